package memory

import (
	"context"
	"testing"

	"bukukas/internal/core"
)

func ids(txs []core.Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func TestMemoryStoreInsertDeleteList(t *testing.T) {
	ctx := context.Background()
	s := New()
	for id := int64(1); id <= 4; id++ {
		if err := s.Insert(ctx, core.Transaction{ID: id, Amount: 1, Direction: core.Paid}); err != nil {
			t.Fatalf("insert %d: %v", id, err)
		}
	}
	got, _ := s.List(ctx)
	if want := []int64{4, 3, 2, 1}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}

	removed, err := s.Delete(ctx, 3)
	if err != nil || !removed {
		t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
	}
	removed, err = s.Delete(ctx, 3)
	if err != nil || removed {
		t.Fatalf("second delete should be a no-op, got removed=%v err=%v", removed, err)
	}
	got, _ = s.List(ctx)
	if want := []int64{4, 2, 1}; !equal(ids(got), want) {
		t.Fatalf("expected %v, got %v", want, ids(got))
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	_ = s.Insert(ctx, core.Transaction{ID: 1, Description: "a"})
	got, _ := s.List(ctx)
	got[0].Description = "changed"
	again, _ := s.List(ctx)
	if again[0].Description != "a" {
		t.Fatalf("store was mutated through List result")
	}
}

func equal(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
