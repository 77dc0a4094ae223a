package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"bukukas/internal/core"
)

type fakeAck struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAck) Ack(bool) error { f.acked = true; return nil }

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func TestDispatch(t *testing.T) {
	added, _ := NewTransactionAdded(core.Transaction{ID: 1, Description: "kopi", Amount: 25000, Direction: core.Received}).ToJSON()

	tests := []struct {
		name        string
		body        []byte
		handlerErr  error
		wantAck     bool
		wantRequeue bool
		wantCalled  bool
	}{
		{name: "success acks", body: added, wantAck: true, wantCalled: true},
		{name: "handler error requeues", body: added, handlerErr: errors.New("boom"), wantRequeue: true, wantCalled: true},
		{name: "malformed json is dropped", body: []byte(`{"id":"x"`)},
		{name: "unknown type is dropped", body: []byte(`{"type":"transaction.edited","id":1}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			called := false
			dispatch(context.Background(), tt.body, ack, func(context.Context, *LedgerEvent) error {
				called = true
				return tt.handlerErr
			})
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if ack.acked != tt.wantAck {
				t.Errorf("acked = %v, want %v", ack.acked, tt.wantAck)
			}
			if !tt.wantAck && !ack.nacked {
				t.Errorf("expected nack")
			}
			if ack.requeue != tt.wantRequeue {
				t.Errorf("requeue = %v, want %v", ack.requeue, tt.wantRequeue)
			}
		})
	}
}

func TestPublishRespectsCancelledContext(t *testing.T) {
	client := &Client{exchangeName: "test_exchange", queueName: "test_queue"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := client.Publish(ctx, NewTransactionRemoved(1)); !errors.Is(err, context.Canceled) {
		t.Errorf("Publish() should return context.Canceled, got %v", err)
	}
}

func TestPublishWithoutChannel(t *testing.T) {
	client := &Client{exchangeName: "test_exchange", queueName: "test_queue"}
	if err := client.Publish(context.Background(), NewTransactionRemoved(1)); err == nil {
		t.Errorf("Publish() should fail without an open channel")
	}
}

func TestLedgerEvent_JSON(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	event := NewTransactionAdded(core.Transaction{ID: 9, Description: "Beli gula", Amount: 5000, Direction: core.Paid, OccurredAt: at})

	data, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	parsed, err := LedgerEventFromJSON(data)
	if err != nil {
		t.Fatalf("LedgerEventFromJSON() error = %v", err)
	}
	if parsed.Type != EventTransactionAdded || parsed.ID != 9 || parsed.Amount != 5000 || parsed.Direction != "paid" {
		t.Errorf("unexpected event %+v", parsed)
	}
	if parsed.OccurredAtMs != at.UnixMilli() {
		t.Errorf("OccurredAtMs = %d, want %d", parsed.OccurredAtMs, at.UnixMilli())
	}
}

func TestNewTransactionRemoved(t *testing.T) {
	event := NewTransactionRemoved(4)
	if event.Type != EventTransactionRemoved || event.ID != 4 {
		t.Errorf("unexpected event %+v", event)
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Errorf("Timestamp should be recent")
	}
}
