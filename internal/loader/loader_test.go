package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTransactions(t *testing.T) {
	path := writeFile(t, "transactions.json", `[
		{"id": "tx1", "date": "2024-01-05", "amount": -120.5, "contact": "Vendor Oy", "reference": "RF000123"},
		{"id": "tx2"}
	]`)

	txs, err := LoadTransactions(path)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx1", txs[0].ID)
	require.NotNil(t, txs[0].Amount)
	assert.Equal(t, -120.5, *txs[0].Amount)
	assert.Equal(t, "RF000123", txs[0].Reference)
	assert.Nil(t, txs[1].Amount, "absent amount stays nil")
}

func TestLoadAttachments(t *testing.T) {
	path := writeFile(t, "attachments.json", `[
		{"id": "att1", "type": "invoice", "data": {
			"total_amount": 120.5,
			"invoicing_date": "2024-01-03",
			"issuer": "Vendor Oy",
			"reference": "123"
		}}
	]`)

	atts, err := LoadAttachments(path)

	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "invoice", atts[0].Type)
	require.NotNil(t, atts[0].Data.TotalAmount)
	assert.Equal(t, 120.5, *atts[0].Data.TotalAmount)
	assert.Equal(t, "Vendor Oy", atts[0].Data.Issuer)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := LoadTransactions(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = LoadAttachments(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, "transactions.json", `{"not": "an array"}`)

	_, err := LoadTransactions(path)

	assert.Error(t, err)
}
