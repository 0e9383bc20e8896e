package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxpay/reconciler/internal/domain/record"
)

func TestFindAttachment_ReferencePrecedence(t *testing.T) {
	// Arrange: the referenced attachment disagrees on every heuristic signal
	m := testMatcher()
	tx := record.Transaction{
		ID:        "tx1",
		Amount:    f(100.0),
		Date:      "2024-01-01",
		Contact:   "Vendor Oy",
		Reference: "RF000123",
	}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(100.0), InvoicingDate: "2024-01-01", Issuer: "Vendor Oy"}},
		{ID: "att2", Data: record.AttachmentData{TotalAmount: f(9999.0), InvoicingDate: "2020-06-15", Issuer: "Someone Else", Reference: "rf 123"}},
	}

	// Act
	got := m.FindAttachment(tx, atts)

	// Assert: reference wins over the otherwise perfect heuristic candidate
	require.NotNil(t, got)
	assert.Equal(t, "att2", got.ID)
}

func TestFindAttachment_DuplicateReferenceFirstWins(t *testing.T) {
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Reference: "123"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{Reference: "RF000123"}},
		{ID: "att2", Data: record.AttachmentData{Reference: "123"}},
	}

	got := m.FindAttachment(tx, atts)

	require.NotNil(t, got)
	assert.Equal(t, "att1", got.ID)
}

func TestFindAttachment_AmountRequired(t *testing.T) {
	m := testMatcher()

	// Transaction without an amount can never match heuristically
	tx := record.Transaction{ID: "tx1", Date: "2024-01-01", Contact: "Vendor Oy"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(100.0), InvoicingDate: "2024-01-01", Issuer: "Vendor Oy"}},
	}
	assert.Nil(t, m.FindAttachment(tx, atts))

	// Attachment without an amount is never selected
	tx = record.Transaction{ID: "tx1", Amount: f(100.0)}
	atts = []record.Attachment{{ID: "att1", Data: record.AttachmentData{InvoicingDate: "2024-01-01"}}}
	assert.Nil(t, m.FindAttachment(tx, atts))
}

func TestFindAttachment_DateNeutralWhenMissing(t *testing.T) {
	// Arrange: exact amount, no dates anywhere
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(100.0), Contact: "Vendor Oy"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(100.0)}},
	}

	// Act
	got := m.FindAttachment(tx, atts)

	// Assert: date neutrality does not prevent the match
	require.NotNil(t, got)
	assert.Equal(t, "att1", got.ID)
}

func TestFindAttachment_DateHardFilter(t *testing.T) {
	// 60-day gap rejects despite the exact amount
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(300.0), Date: "2024-01-01"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(300.0), InvoicingDate: "2024-03-02"}},
	}

	assert.Nil(t, m.FindAttachment(tx, atts))
}

func TestFindAttachment_NameConflictOverride(t *testing.T) {
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(100.0), Date: "2024-01-01", Contact: "Acme Corp"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(100.0), InvoicingDate: "2024-01-01", Issuer: "Vendor Oy"}},
	}

	assert.Nil(t, m.FindAttachment(tx, atts))
}

func TestFindAttachment_WeakNameMatchSelected(t *testing.T) {
	// Contact "Jane Doe" vs supplier "Jane Doe Design": weak substring match
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(75.0), Contact: "Jane Doe"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(75.0), Supplier: "Jane Doe Design"}},
	}

	got := m.FindAttachment(tx, atts)

	require.NotNil(t, got)
	assert.Equal(t, "att1", got.ID)
	assert.Equal(t, 15.0, m.matchScore(tx, atts[0])) // base 10 + weak name 5
}

func TestFindAttachment_BestCandidateWins(t *testing.T) {
	// Two amount-compatible candidates; the closer date wins
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(50.0), Date: "2024-04-10"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(50.0), InvoicingDate: "2024-04-18"}},
		{ID: "att2", Data: record.AttachmentData{TotalAmount: f(50.0), InvoicingDate: "2024-04-11"}},
	}

	got := m.FindAttachment(tx, atts)

	require.NotNil(t, got)
	assert.Equal(t, "att2", got.ID)
}

func TestFindAttachment_EqualScoresFirstSeenWins(t *testing.T) {
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(50.0)}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(50.0)}},
		{ID: "att2", Data: record.AttachmentData{TotalAmount: f(50.0)}},
	}

	got := m.FindAttachment(tx, atts)

	require.NotNil(t, got)
	assert.Equal(t, "att1", got.ID)
}

func TestFindAttachment_EmptyCandidates(t *testing.T) {
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(50.0), Reference: "123"}

	assert.Nil(t, m.FindAttachment(tx, nil))
	assert.Nil(t, m.FindAttachment(tx, []record.Attachment{}))
}

func TestFindAttachment_Idempotent(t *testing.T) {
	m := testMatcher()
	tx := record.Transaction{ID: "tx1", Amount: f(50.0), Date: "2024-04-10"}
	atts := []record.Attachment{
		{ID: "att1", Data: record.AttachmentData{TotalAmount: f(50.0), InvoicingDate: "2024-04-11"}},
	}

	first := m.FindAttachment(tx, atts)
	second := m.FindAttachment(tx, atts)

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestFindTransaction_Mirror(t *testing.T) {
	// Arrange
	m := testMatcher()
	att := record.Attachment{
		ID: "att1",
		Data: record.AttachmentData{
			TotalAmount:   f(120.0),
			InvoicingDate: "2024-02-01",
			Issuer:        "Vendor Oy",
		},
	}
	txs := []record.Transaction{
		{ID: "tx1", Amount: f(-120.0), Date: "2024-02-03", Contact: "Vendor Oy"},
		{ID: "tx2", Amount: f(-500.0), Date: "2024-02-03"},
	}

	// Act
	got := m.FindTransaction(att, txs)

	// Assert
	require.NotNil(t, got)
	assert.Equal(t, "tx1", got.ID)
}

func TestFindTransaction_ReferenceFromAttachmentData(t *testing.T) {
	m := testMatcher()
	att := record.Attachment{ID: "att1", Data: record.AttachmentData{Reference: "RF 00 42"}}
	txs := []record.Transaction{
		{ID: "tx1", Amount: f(10.0)},
		{ID: "tx2", Reference: "042"},
	}

	got := m.FindTransaction(att, txs)

	require.NotNil(t, got)
	assert.Equal(t, "tx2", got.ID)
}

func TestFindTransaction_EmptyCandidates(t *testing.T) {
	m := testMatcher()
	att := record.Attachment{ID: "att1", Data: record.AttachmentData{TotalAmount: f(10.0)}}

	assert.Nil(t, m.FindTransaction(att, nil))
}
