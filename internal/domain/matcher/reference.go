package matcher

import "github.com/veloxpay/reconciler/internal/domain/record"

// Reference matches are hard and unconditional: when the anchor's normalized
// reference equals a candidate's, that candidate wins without any amount,
// date or name agreement. The scan is first-wins in candidate order, so a
// duplicated reference resolves to the earliest candidate.

// attachmentByReference returns the first attachment whose normalized
// reference equals ref, or nil. An empty ref never matches anything.
func attachmentByReference(ref string, atts []record.Attachment) *record.Attachment {
	if ref == "" {
		return nil
	}
	for i := range atts {
		if normalizeReference(atts[i].Data.Reference) == ref {
			return &atts[i]
		}
	}
	return nil
}

// transactionByReference is the transaction-side mirror of
// attachmentByReference.
func transactionByReference(ref string, txs []record.Transaction) *record.Transaction {
	if ref == "" {
		return nil
	}
	for i := range txs {
		if normalizeReference(txs[i].Reference) == ref {
			return &txs[i]
		}
	}
	return nil
}
