package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"bukukas/internal/core"
	"bukukas/internal/ledger"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), time.Now().UnixNano())
	s, err := NewSQLiteStore(name)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreOrderAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	at := time.UnixMilli(1700000000123)

	for id := int64(1); id <= 3; id++ {
		tx := core.Transaction{ID: id, Description: fmt.Sprintf("tx%d", id), Amount: id * 100, Direction: core.Paid, OccurredAt: at}
		if err := s.Insert(ctx, tx); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got[0].OccurredAt.Equal(at) || got[0].Amount != 300 || got[0].Direction != core.Paid {
		t.Fatalf("round trip mismatch: %+v", got[0])
	}

	removed, err := s.Delete(ctx, 2)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}
	removed, err = s.Delete(ctx, 2)
	if err != nil || removed {
		t.Fatalf("expected no-op, got %v %v", removed, err)
	}
	got, _ = s.List(ctx)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Fatalf("unexpected order after delete: %+v", got)
	}
}

func TestSQLiteStoreRejectsNonPositiveAmount(t *testing.T) {
	s := newTestStore(t)
	err := s.Insert(context.Background(), core.Transaction{ID: 1, Description: "-", Amount: 0, Direction: core.Paid})
	if err == nil {
		t.Fatalf("schema should reject zero amounts")
	}
}

func TestSQLiteStoreBacksLedger(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(newTestStore(t))
	drafts := []core.TransactionDraft{
		{Description: "Penjualan kopi", Amount: 25000, Direction: core.Received},
		{Description: "Beli gula", Amount: 5000, Direction: core.Paid},
		{Description: "Deposit tabungan", Amount: 100000, Direction: core.Received},
	}
	for _, d := range drafts {
		if _, err := l.Add(ctx, d); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	totals, err := l.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals != (core.Totals{Received: 125000, Paid: 5000, Balance: 120000}) {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestNewSQLiteStoreRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "a/b", "x?y"} {
		if _, err := NewSQLiteStore(name); err == nil {
			t.Fatalf("%q should be rejected", name)
		}
	}
}

func TestNewSQLiteStoreRejectsOpenName(t *testing.T) {
	ctx := context.Background()
	name := fmt.Sprintf("shared_%d", time.Now().UnixNano())

	first, err := NewSQLiteStore(name)
	if err != nil {
		t.Fatalf("first store: %v", err)
	}
	if _, err := ledger.New(first).Add(ctx, core.TransactionDraft{Amount: 100, Direction: core.Paid}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := NewSQLiteStore(name); !errors.Is(err, ErrDatabaseInUse) {
		t.Fatalf("expected ErrDatabaseInUse for a second store on %q, got %v", name, err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("second close should be a no-op: %v", err)
	}

	second, err := NewSQLiteStore(name)
	if err != nil {
		t.Fatalf("name should be free after close: %v", err)
	}
	defer second.Close()

	tx, err := ledger.New(second).Add(ctx, core.TransactionDraft{Amount: 200, Direction: core.Received})
	if err != nil {
		t.Fatalf("add after reopen: %v", err)
	}
	got, err := second.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tx.ID != 1 || len(got) != 1 {
		t.Fatalf("reopened database should start empty, got id %d and %+v", tx.ID, got)
	}
}
