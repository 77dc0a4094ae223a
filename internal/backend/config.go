package backend

import (
	"fmt"

	"bukukas/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	storeType := StoreType(appConfig.LedgerStore)
	if !storeType.IsValid() {
		return Config{}, fmt.Errorf("invalid ledger store in config: %s", appConfig.LedgerStore)
	}

	return Config{
		Store:            storeType,
		SQLiteMemoryName: appConfig.SQLiteMemoryName,
		AMQPURL:          appConfig.AMQPURL,
		AMQPExchange:     appConfig.AMQPExchange,
		AMQPQueue:        appConfig.AMQPQueue,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Store.IsValid() {
		return fmt.Errorf("invalid store type: %s", c.Store)
	}

	if c.Store == SQLiteStore && c.SQLiteMemoryName == "" {
		return fmt.Errorf("SQLite memory database name is required for sqlite store")
	}

	// AMQP is optional, so we only check it is complete when enabled
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		return fmt.Errorf("AMQP exchange and queue are required when AMQP URL is set")
	}

	return nil
}

// StoreTypes returns all valid store types
func StoreTypes() []StoreType {
	return []StoreType{MemoryStore, SQLiteStore}
}
