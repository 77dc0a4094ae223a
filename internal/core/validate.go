package core

import (
	"strings"
	"time"
)

// ValidationError is returned by Validate when the form cannot produce a draft.
// The form stays editable; hosts show Message and focus Field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Message is the text shown to the user.
func (e *ValidationError) Message() string {
	switch e.Err {
	case ErrInvalidAmount:
		return "enter a valid amount"
	case ErrInvalidDirection:
		return "choose received or paid"
	default:
		return e.Err.Error()
	}
}

// Validate turns raw entry form state into a draft.
// It does not read the clock; occurredAt is taken as given.
func Validate(rawDescription, rawAmount string, direction Direction, occurredAt time.Time) (TransactionDraft, error) {
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return TransactionDraft{}, &ValidationError{Field: "amount", Err: err}
	}
	if !direction.Valid() {
		return TransactionDraft{}, &ValidationError{Field: "direction", Err: ErrInvalidDirection}
	}
	return TransactionDraft{
		Description: NormalizeDescription(rawDescription),
		Amount:      amount,
		Direction:   direction,
		OccurredAt:  occurredAt,
	}, nil
}

// NormalizeDescription trims the note and substitutes the placeholder for blanks.
func NormalizeDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return PlaceholderDescription
	}
	return s
}
