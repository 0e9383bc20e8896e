// Package reconcile runs a full matching pass over two record sets and
// aggregates the per-anchor results into a bidirectional id mapping.
//
// Each anchor is an independent, side-effect-free matcher call, so the pass
// fans out over a bounded worker pool with no coordination beyond collecting
// results. A failure (cancellation) while matching one anchor never affects
// the result of another.
package reconcile

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/veloxpay/reconciler/internal/domain/matcher"
	"github.com/veloxpay/reconciler/internal/domain/record"
)

// Result is the aggregate outcome of one reconciliation pass. Map values are
// nil when no confident match was found for that anchor.
type Result struct {
	TransactionToAttachment map[string]*string `json:"transaction_to_attachment"`
	AttachmentToTransaction map[string]*string `json:"attachment_to_transaction"`
}

// Matched counts the anchors in both directions that resolved to a
// counterpart.
func (r *Result) Matched() int {
	n := 0
	for _, id := range r.TransactionToAttachment {
		if id != nil {
			n++
		}
	}
	for _, id := range r.AttachmentToTransaction {
		if id != nil {
			n++
		}
	}
	return n
}

// Options controls one reconciliation pass.
type Options struct {
	Workers int // concurrent anchors; 0 means runtime.NumCPU()

	// OnProgress, if set, is called after each anchor completes with the
	// number of anchors done so far and the total. Calls come from multiple
	// goroutines and may arrive out of order.
	OnProgress func(done, total int)
}

// Orchestrator drives matcher calls for every anchor on both sides.
type Orchestrator struct {
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator around the given matcher.
func NewOrchestrator(m *matcher.Matcher, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{matcher: m, logger: logger}
}

// Run matches every transaction against the attachments and every attachment
// against the transactions, returning the combined mapping. Anchors are
// processed concurrently; the output is deterministic regardless of
// scheduling because each anchor writes to its own slot. Cancelling the
// context abandons unstarted anchors and returns ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, txs []record.Transaction, atts []record.Attachment, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	total := len(txs) + len(atts)
	o.logger.Debug("starting reconciliation pass",
		"transactions", len(txs),
		"attachments", len(atts),
		"workers", workers,
	)

	txMatches := make([]*record.Attachment, len(txs))
	attMatches := make([]*record.Transaction, len(atts))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		done     int
		sem      = make(chan struct{}, workers)
		progress = func() {
			if opts.OnProgress == nil {
				return
			}
			mu.Lock()
			done++
			n := done
			mu.Unlock()
			opts.OnProgress(n, total)
		}
	)

	run := func(task func()) bool {
		select {
		case <-ctx.Done():
			return false
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			task()
			progress()
		}()
		return true
	}

	for i := range txs {
		if !run(func() { txMatches[i] = o.matcher.FindAttachment(txs[i], atts) }) {
			break
		}
	}
	for i := range atts {
		if !run(func() { attMatches[i] = o.matcher.FindTransaction(atts[i], txs) }) {
			break
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		o.logger.Warn("reconciliation pass cancelled", "error", err)
		return nil, err
	}

	result := &Result{
		TransactionToAttachment: make(map[string]*string, len(txs)),
		AttachmentToTransaction: make(map[string]*string, len(atts)),
	}
	for i := range txs {
		result.TransactionToAttachment[txs[i].ID] = attachmentID(txMatches[i])
	}
	for i := range atts {
		result.AttachmentToTransaction[atts[i].ID] = transactionID(attMatches[i])
	}

	o.logger.Debug("reconciliation pass complete", "matched", result.Matched(), "anchors", total)

	return result, nil
}

func attachmentID(att *record.Attachment) *string {
	if att == nil {
		return nil
	}
	return &att.ID
}

func transactionID(tx *record.Transaction) *string {
	if tx == nil {
		return nil
	}
	return &tx.ID
}
