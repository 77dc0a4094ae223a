package backend

import (
	"context"
	"fmt"

	"bukukas/internal/amqp"
	"bukukas/internal/ledger"
	applog "bukukas/internal/log"
	"bukukas/internal/services"
	"bukukas/internal/storage"
	"bukukas/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store  ledger.Store
		closer services.Closer
	)
	switch config.Store {
	case SQLiteStore:
		sqliteStore, err := storage.NewSQLiteStore(config.SQLiteMemoryName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		store, closer = sqliteStore, sqliteStore
	case MemoryStore:
		store = memory.New()
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Store)
	}

	publisher := f.createPublisher(ctx, config)

	service := services.NewLedgerService(ledger.New(store), publisher, closer, f.logger)

	f.logger.InfoContext(ctx, "Initialized ledger backend",
		applog.FieldStore, config.Store.String(),
		"amqp_enabled", publisher != nil)

	return &BackendResult{
		Service: service,
		Cleanup: service.Close,
	}, nil
}

// createPublisher returns nil when AMQP is disabled or unreachable; the
// ledger works without events.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) services.Publisher {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		return nil
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
