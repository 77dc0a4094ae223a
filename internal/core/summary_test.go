package core

import "testing"

func TestSummarize(t *testing.T) {
	if got := Summarize(nil); got != (Totals{}) {
		t.Fatalf("empty ledger should have zero totals, got %+v", got)
	}

	txs := []Transaction{
		{ID: 3, Amount: 100000, Direction: Received},
		{ID: 2, Amount: 5000, Direction: Paid},
		{ID: 1, Amount: 25000, Direction: Received},
	}
	got := Summarize(txs)
	want := Totals{Received: 125000, Paid: 5000, Balance: 120000}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSummarizeNegativeBalance(t *testing.T) {
	got := Summarize([]Transaction{
		{Amount: 10, Direction: Received},
		{Amount: 40, Direction: Paid},
	})
	if got.Balance != -30 {
		t.Fatalf("expected balance -30, got %d", got.Balance)
	}
}

func TestTransactionSigned(t *testing.T) {
	if got := (Transaction{Amount: 7, Direction: Paid}).Signed(); got != -7 {
		t.Fatalf("paid should be negative, got %d", got)
	}
	if got := (Transaction{Amount: 7, Direction: Received}).Signed(); got != 7 {
		t.Fatalf("received should be positive, got %d", got)
	}
}
