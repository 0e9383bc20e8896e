// Package matcher pairs bank transactions with document attachments
// (invoices, receipts).
//
// Matching runs in two stages:
//   - Reference match: exact lookup by normalized payment reference. A hit
//     wins unconditionally and skips scoring.
//   - Heuristic scoring: amount compatibility is required (within 1 cent,
//     sign-insensitive) and contributes a base score; date proximity and
//     counterparty name similarity add bounded bonuses. Pairs more than 30
//     days apart, or with conflicting names, are rejected outright.
//
// The best-scoring candidate wins if its score is positive; ties resolve to
// the first candidate seen, in input order. Both entry points are pure and
// never fail: "no confident match" is a nil result.
//
// Example usage:
//
//	cfg := matcher.DefaultConfig()
//	cfg.CompanyName = "Example Company Oy"
//	m := matcher.NewMatcher(cfg)
//	att := m.FindAttachment(tx, attachments)
//	if att != nil {
//		// Found a match!
//	}
package matcher

import "github.com/veloxpay/reconciler/internal/domain/record"

// Matcher finds the best counterpart for a record on the other side of the
// ledger. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	cfg Config
}

// NewMatcher creates a matcher with the given config. Zero tolerances are
// replaced by the defaults so a partially filled Config stays usable.
func NewMatcher(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.AmountTolerance == 0 {
		cfg.AmountTolerance = def.AmountTolerance
	}
	if cfg.DateCutoffDays == 0 {
		cfg.DateCutoffDays = def.DateCutoffDays
	}
	return &Matcher{cfg: cfg}
}

// FindAttachment returns the best matching attachment for a transaction, or
// nil when no candidate matches confidently.
func (m *Matcher) FindAttachment(tx record.Transaction, atts []record.Attachment) *record.Attachment {
	if att := attachmentByReference(normalizeReference(tx.Reference), atts); att != nil {
		return att
	}

	best := -1
	bestScore := 0.0
	for i := range atts {
		// Strict > keeps the first candidate reaching a given maximum.
		if score := m.matchScore(tx, atts[i]); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return nil
	}
	return &atts[best]
}

// FindTransaction returns the best matching transaction for an attachment,
// or nil when no candidate matches confidently. It is the mirror of
// FindAttachment: the same reference lookup and the same composite score
// with the roles swapped.
func (m *Matcher) FindTransaction(att record.Attachment, txs []record.Transaction) *record.Transaction {
	if tx := transactionByReference(normalizeReference(att.Data.Reference), txs); tx != nil {
		return tx
	}

	best := -1
	bestScore := 0.0
	for i := range txs {
		if score := m.matchScore(txs[i], att); score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		return nil
	}
	return &txs[best]
}
