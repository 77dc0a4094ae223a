package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	draft, err := Validate("  Penjualan kopi ", "25.000", Received, at)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	want := TransactionDraft{Description: "Penjualan kopi", Amount: 25000, Direction: Received, OccurredAt: at}
	if draft != want {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestValidateDescriptionPlaceholder(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		draft, err := Validate(in, "10", Paid, time.Time{})
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if draft.Description != PlaceholderDescription {
			t.Fatalf("%q: expected placeholder, got %q", in, draft.Description)
		}
	}
}

func TestValidateRejectsBadAmounts(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-50"} {
		_, err := Validate("x", in, Paid, time.Now())
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%q: expected ErrInvalidAmount, got %v", in, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%q: expected *ValidationError, got %T", in, err)
		}
		if verr.Field != "amount" || verr.Message() != "enter a valid amount" {
			t.Fatalf("%q: unexpected validation error %+v (%s)", in, verr, verr.Message())
		}
	}
}

func TestValidateRejectsUnknownDirection(t *testing.T) {
	_, err := Validate("x", "10", Direction("sideways"), time.Now())
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	at := time.Unix(1700000000, 0)
	a, errA := Validate(" note ", "1,500", Paid, at)
	b, errB := Validate(" note ", "1,500", Paid, at)
	if errA != nil || errB != nil || a != b {
		t.Fatalf("expected identical results, got %+v/%v and %+v/%v", a, errA, b, errB)
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"received", Received, true},
		{" PAID ", Paid, true},
		{"0", Received, true},
		{"1", Paid, true},
		{"2", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseDirection(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
