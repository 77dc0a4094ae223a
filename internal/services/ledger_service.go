package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"bukukas/internal/amqp"
	"bukukas/internal/core"
	"bukukas/internal/ledger"
	applog "bukukas/internal/log"
)

// Publisher sends ledger events to whoever listens.
type Publisher interface {
	Publish(ctx context.Context, event *amqp.LedgerEvent) error
	Close() error
}

// Closer releases the store behind the ledger.
type Closer interface {
	Close() error
}

// LedgerService records and deletes transactions and announces the changes.
// Event publishing is best effort: the ledger is the source of truth.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher Publisher
	store     Closer
	logger    *applog.Logger
	stats     serviceStats
}

type serviceStats struct {
	recorded       atomic.Int64
	recordFailures atomic.Int64
	removed        atomic.Int64
	publishFailed  atomic.Int64
}

// Stats counts ledger mutations since the service started.
type Stats struct {
	Recorded       int64
	RecordFailures int64
	Removed        int64
	PublishFailed  int64
	Publishing     bool
}

func NewLedgerService(l *ledger.Ledger, publisher Publisher, store Closer, logger *applog.Logger) *LedgerService {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &LedgerService{
		ledger:    l,
		publisher: publisher,
		store:     store,
		logger:    logger.WithComponent(applog.ComponentLedger),
	}
}

// Record adds a validated draft to the ledger.
func (s *LedgerService) Record(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	tx, err := s.ledger.Add(ctx, draft)
	if err != nil {
		s.stats.recordFailures.Add(1)
		s.logger.ErrorContext(ctx, "Failed to record transaction", applog.NewFields().
			WithTransaction(0, draft.Description, draft.Amount, string(draft.Direction)).
			WithOperation(applog.OpAdd).
			WithError(err).
			ToSlice()...)
		return core.Transaction{}, fmt.Errorf("record transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "Transaction recorded", applog.NewFields().
		WithTransaction(tx.ID, tx.Description, tx.Amount, string(tx.Direction)).
		WithOperation(applog.OpAdd).
		ToSlice()...)
	s.stats.recorded.Add(1)

	s.publish(ctx, amqp.NewTransactionAdded(tx))
	return tx, nil
}

// Delete removes a transaction. Deleting an unknown id reports false without error.
func (s *LedgerService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.ledger.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("remove transaction: %w", err)
	}
	if !removed {
		s.logger.DebugContext(ctx, "Transaction already gone", applog.FieldTransactionID, id)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Transaction removed",
		applog.FieldTransactionID, id,
		applog.FieldOperation, applog.OpRemove)
	s.stats.removed.Add(1)

	s.publish(ctx, amqp.NewTransactionRemoved(id))
	return true, nil
}

// Overview returns the list and totals as one consistent snapshot.
func (s *LedgerService) Overview(ctx context.Context) (ledger.Snapshot, error) {
	return s.ledger.Snapshot(ctx)
}

func (s *LedgerService) Transactions(ctx context.Context) ([]core.Transaction, error) {
	return s.ledger.List(ctx)
}

func (s *LedgerService) Totals(ctx context.Context) (core.Totals, error) {
	return s.ledger.Totals(ctx)
}

// Count returns the number of transactions in the ledger.
func (s *LedgerService) Count(ctx context.Context) (int, error) {
	return s.ledger.Len(ctx)
}

// SeedExamples records the three demo transactions shown on first launch.
// They go in oldest-listed first so the list reads kopi, gula, tabungan.
func (s *LedgerService) SeedExamples(ctx context.Context, now time.Time) error {
	examples := []core.TransactionDraft{
		{Description: "Deposit tabungan", Amount: 100000, Direction: core.Received, OccurredAt: now.Add(-24 * time.Hour)},
		{Description: "Beli gula", Amount: 5000, Direction: core.Paid, OccurredAt: now.Add(-30 * time.Minute)},
		{Description: "Penjualan kopi", Amount: 25000, Direction: core.Received, OccurredAt: now.Add(-time.Hour)},
	}
	for _, d := range examples {
		if _, err := s.Record(ctx, d); err != nil {
			return fmt.Errorf("seed examples: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "Example data seeded", "count", len(examples), applog.FieldOperation, applog.OpSeed)
	return nil
}

func (s *LedgerService) publish(ctx context.Context, event *amqp.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.stats.publishFailed.Add(1)
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			applog.FieldEventType, event.Type,
			applog.FieldTransactionID, event.ID,
			applog.FieldError, err)
	}
}

func (s *LedgerService) Stats() Stats {
	return Stats{
		Recorded:       s.stats.recorded.Load(),
		RecordFailures: s.stats.recordFailures.Load(),
		Removed:        s.stats.removed.Load(),
		PublishFailed:  s.stats.publishFailed.Load(),
		Publishing:     s.publisher != nil,
	}
}

// Close closes the publisher and the store.
func (s *LedgerService) Close() error {
	var errs []error

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}

	return nil
}
