// Package record defines the wire shapes for the two reconciliation inputs:
// bank transactions and document attachments (invoices, receipts).
//
// Records are produced by an external loader (JSON file or HTTP body), live
// for the duration of one matching pass and are never mutated by the matcher.
// Optional numeric fields are pointers so that "absent" is distinguishable
// from zero.
package record

// Transaction is a single bank transaction.
type Transaction struct {
	ID        string   `json:"id"`
	Date      string   `json:"date,omitempty"`      // calendar date, YYYY-MM-DD
	Amount    *float64 `json:"amount,omitempty"`    // signed; negative for debits
	Contact   string   `json:"contact,omitempty"`   // free-text counterparty name
	Reference string   `json:"reference,omitempty"` // free-text payment reference
}

// Attachment is a document (invoice or receipt) that may justify a
// transaction. The Type tag is informational only and plays no part in
// matching.
type Attachment struct {
	ID   string         `json:"id"`
	Type string         `json:"type,omitempty"` // e.g. "invoice", "receipt"
	Data AttachmentData `json:"data"`
}

// AttachmentData holds the extracted document fields. Every field is
// optional; missing values degrade to neutral scoring rather than errors.
type AttachmentData struct {
	TotalAmount   *float64 `json:"total_amount,omitempty"`
	InvoicingDate string   `json:"invoicing_date,omitempty"`
	DueDate       string   `json:"due_date,omitempty"`
	ReceivingDate string   `json:"receiving_date,omitempty"`
	Issuer        string   `json:"issuer,omitempty"`
	Recipient     string   `json:"recipient,omitempty"`
	Supplier      string   `json:"supplier,omitempty"`
	Reference     string   `json:"reference,omitempty"`
}
