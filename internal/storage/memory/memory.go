package memory

import (
	"context"
	"sync"

	"bukukas/internal/core"
)

// Store keeps transactions in a slice, front first.
type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// Insert puts tx at index 0.
func (s *Store) Insert(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, core.Transaction{})
	copy(s.items[1:], s.items)
	s.items[0] = tx
	return nil
}

// Delete removes the first transaction with id and keeps the remaining order.
func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.items {
		if tx.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// List returns a copy so callers cannot reorder the store.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}
