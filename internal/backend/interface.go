package backend

import (
	"context"

	"bukukas/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the ledger service and its cleanup function
type BackendResult struct {
	Service *services.LedgerService
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend wires a store, an optional event publisher and the ledger service
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Store StoreType

	// SQLite specific
	SQLiteMemoryName string

	// Optional ledger events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// StoreType selects where the ledger keeps its rows while the process runs
type StoreType string

const (
	MemoryStore StoreType = "memory"
	SQLiteStore StoreType = "sqlite"
)

// String implements fmt.Stringer
func (st StoreType) String() string {
	return string(st)
}

// IsValid returns true if the store type is valid
func (st StoreType) IsValid() bool {
	switch st {
	case MemoryStore, SQLiteStore:
		return true
	default:
		return false
	}
}
