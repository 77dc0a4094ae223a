// Package worker holds the consumers of ledger events published by the
// ledger hosts.
package worker

import (
	"context"
	"sync/atomic"

	"bukukas/internal/amqp"
	applog "bukukas/internal/log"
)

// AuditWorker writes one log record per ledger event. It keeps no ledger
// state: a removal event only carries the transaction ID.
type AuditWorker struct {
	logger *applog.Logger

	added   atomic.Int64
	removed atomic.Int64
	ignored atomic.Int64
}

func NewAuditWorker(logger *applog.Logger) *AuditWorker {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &AuditWorker{logger: logger.WithComponent(applog.ComponentAudit)}
}

// HandleEvent is the amqp.Client consume handler. Unknown event types are
// logged and acknowledged so they do not loop on the queue.
func (w *AuditWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	switch event.Type {
	case amqp.EventTransactionAdded:
		w.added.Add(1)
		w.logger.InfoContext(ctx, "Transaction added",
			applog.FieldTransactionID, event.ID,
			applog.FieldDescription, event.Description,
			applog.FieldAmount, event.Amount,
			applog.FieldDirection, event.Direction,
			applog.FieldOccurredAtMs, event.OccurredAtMs,
			"published_at", event.Timestamp)
	case amqp.EventTransactionRemoved:
		w.removed.Add(1)
		w.logger.InfoContext(ctx, "Transaction removed",
			applog.FieldTransactionID, event.ID,
			"published_at", event.Timestamp)
	default:
		w.ignored.Add(1)
		w.logger.WarnContext(ctx, "Ignoring unknown ledger event",
			applog.FieldEventType, event.Type,
			applog.FieldTransactionID, event.ID)
	}
	return nil
}

// Stats counts the events handled since the worker started.
type Stats struct {
	Added   int64
	Removed int64
	Ignored int64
}

func (w *AuditWorker) Stats() Stats {
	return Stats{
		Added:   w.added.Load(),
		Removed: w.removed.Load(),
		Ignored: w.ignored.Load(),
	}
}
