package tui

import (
	"testing"
	"time"

	"bukukas/internal/core"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{25000, "25.000"},
		{1250000, "1.250.000"},
		{-20000, "-20.000"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	received := core.Transaction{Amount: 25000, Direction: core.Received}
	paid := core.Transaction{Amount: 5000, Direction: core.Paid}

	if got := formatSigned(received); got != "+ 25.000" {
		t.Errorf("received: %q", got)
	}
	if got := formatSigned(paid); got != "- 5.000" {
		t.Errorf("paid: %q", got)
	}
}

func TestFormatWhen(t *testing.T) {
	at := time.Date(2025, 3, 10, 11, 5, 0, 0, time.UTC)
	if got := formatWhen(at); got != "Mon, 10 Mar 2025 11:05" {
		t.Errorf("formatWhen = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Penjualan kopi", 24); got != "Penjualan kopi" {
		t.Errorf("short strings are kept, got %q", got)
	}
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate = %q", got)
	}
}
