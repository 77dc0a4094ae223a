package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Received Direction = "received"
	Paid     Direction = "paid"
)

// PlaceholderDescription is stored when the user leaves the note empty.
const PlaceholderDescription = "-"

type (
	// Direction tells whether money came in or went out.
	Direction string

	// TransactionDraft is a validated entry that has not been stored yet.
	TransactionDraft struct {
		Description string
		Amount      int64 // minor units
		Direction   Direction
		OccurredAt  time.Time
	}

	// Transaction is a stored ledger entry. Only the ledger creates these.
	Transaction struct {
		ID          int64
		Description string
		Amount      int64 // minor units
		Direction   Direction
		OccurredAt  time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
)

// ParseDirection accepts the direction names and the legacy numeric codes
// ("0" received, "1" paid).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "received", "0":
		return Received, nil
	case "paid", "1":
		return Paid, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Received || d == Paid
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Received {
		return Paid
	}
	return Received
}

func (d Direction) String() string {
	return string(d)
}

// Signed returns the amount with the sign it has on the balance.
func (t Transaction) Signed() int64 {
	if t.Direction == Paid {
		return -t.Amount
	}
	return t.Amount
}

// Draft returns the transaction's content without its identity.
func (t Transaction) Draft() TransactionDraft {
	return TransactionDraft{
		Description: t.Description,
		Amount:      t.Amount,
		Direction:   t.Direction,
		OccurredAt:  t.OccurredAt,
	}
}
