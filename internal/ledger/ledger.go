// Package ledger owns the collection of transactions and the totals derived from it.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"bukukas/internal/core"
)

// Store holds transactions in display order, most recent first.
type Store interface {
	// Insert puts tx at the front of the collection.
	Insert(ctx context.Context, tx core.Transaction) error
	// Delete removes the transaction with id, keeping the order of the rest.
	Delete(ctx context.Context, id int64) (bool, error)
	// List returns a copy of the collection in display order.
	List(ctx context.Context) ([]core.Transaction, error)
}

// Snapshot is a consistent view of the list and its totals.
type Snapshot struct {
	Transactions []core.Transaction
	Totals       core.Totals
}

// Ledger is the only writer of its Store. Ids are assigned here and never reused.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	lastID int64
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Add stores draft as a new transaction at the front of the list.
// Drafts come from core.Validate; a non-positive amount here is a caller bug.
func (l *Ledger) Add(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	if draft.Amount <= 0 {
		return core.Transaction{}, fmt.Errorf("add transaction: %w: %d", core.ErrInvalidAmount, draft.Amount)
	}
	if !draft.Direction.Valid() {
		return core.Transaction{}, fmt.Errorf("add transaction: %w: %q", core.ErrInvalidDirection, draft.Direction)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := core.Transaction{
		ID:          l.lastID + 1,
		Description: core.NormalizeDescription(draft.Description),
		Amount:      draft.Amount,
		Direction:   draft.Direction,
		OccurredAt:  draft.OccurredAt,
	}
	if err := l.store.Insert(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	l.lastID = tx.ID
	return tx, nil
}

// Remove deletes the transaction with id. An unknown id is a no-op reported as false.
func (l *Ledger) Remove(ctx context.Context, id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed, err := l.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return removed, nil
}

// List returns the transactions, most recently added first.
func (l *Ledger) List(ctx context.Context) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list(ctx)
}

// Totals sums the current collection. Nothing is cached between calls.
func (l *Ledger) Totals(ctx context.Context) (core.Totals, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.list(ctx)
	if err != nil {
		return core.Totals{}, err
	}
	return core.Summarize(txs), nil
}

// Snapshot returns the list and totals read under the same lock.
func (l *Ledger) Snapshot(ctx context.Context) (Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs, err := l.list(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Transactions: txs, Totals: core.Summarize(txs)}, nil
}

// Len returns the number of transactions.
func (l *Ledger) Len(ctx context.Context) (int, error) {
	txs, err := l.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(txs), nil
}

func (l *Ledger) list(ctx context.Context) ([]core.Transaction, error) {
	txs, err := l.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}
