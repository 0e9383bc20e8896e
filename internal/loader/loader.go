// Package loader reads record sets from JSON files.
//
// Each file holds a flat JSON array of the wire shapes in
// internal/domain/record. Loading is the caller's concern; the matcher
// itself never touches the filesystem.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veloxpay/reconciler/internal/domain/record"
)

// LoadTransactions reads a JSON array of transactions from path.
func LoadTransactions(path string) ([]record.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transactions file: %w", err)
	}

	var txs []record.Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("parse transactions from %s: %w", path, err)
	}
	return txs, nil
}

// LoadAttachments reads a JSON array of attachments from path.
func LoadAttachments(path string) ([]record.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachments file: %w", err)
	}

	var atts []record.Attachment
	if err := json.Unmarshal(data, &atts); err != nil {
		return nil, fmt.Errorf("parse attachments from %s: %w", path, err)
	}
	return atts, nil
}
