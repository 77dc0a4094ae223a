package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"bukukas/internal/core"
)

// Event types published on the ledger exchange
const (
	EventTransactionAdded   = "transaction.added"
	EventTransactionRemoved = "transaction.removed"
)

// LedgerEvent describes one ledger mutation. Removal events carry only the ID.
type LedgerEvent struct {
	Type         string    `json:"type"`
	ID           int64     `json:"id"`
	Description  string    `json:"description,omitempty"`
	Amount       int64     `json:"amount,omitempty"`
	Direction    string    `json:"direction,omitempty"`
	OccurredAtMs int64     `json:"occurred_at_ms,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewTransactionAdded builds the event for a stored transaction
func NewTransactionAdded(tx core.Transaction) *LedgerEvent {
	return &LedgerEvent{
		Type:         EventTransactionAdded,
		ID:           tx.ID,
		Description:  tx.Description,
		Amount:       tx.Amount,
		Direction:    string(tx.Direction),
		OccurredAtMs: tx.OccurredAt.UnixMilli(),
		Timestamp:    time.Now(),
	}
}

// NewTransactionRemoved builds the event for a deleted transaction
func NewTransactionRemoved(id int64) *LedgerEvent {
	return &LedgerEvent{
		Type:      EventTransactionRemoved,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LedgerEventFromJSON decodes an event and rejects unknown types
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var e LedgerEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	switch e.Type {
	case EventTransactionAdded, EventTransactionRemoved:
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
	return &e, nil
}
