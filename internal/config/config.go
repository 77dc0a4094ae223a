package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Ledger store: "memory" or "sqlite" (in-memory SQLite, nothing on disk)
	LedgerStore      string
	SQLiteMemoryName string

	// AMQP ledger events (disabled when URL is empty)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Entry sessions held by the HTTP host
	EntrySessionTTL time.Duration
	EntrySessionMax int

	// Mutating requests allowed per client IP per minute
	RateLimitPerMinute int

	SeedExampleData bool
	LogLevel        string

	// Log destination for the terminal UI; empty discards logs
	TUILogFile string
}

var validStores = []string{"memory", "sqlite"}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		LedgerStore:      getEnv("LEDGER_STORE", "memory"),
		SQLiteMemoryName: getEnv("SQLITE_MEMORY_NAME", "bukukas"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "bukukas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		EntrySessionTTL: getEnvDuration("ENTRY_SESSION_TTL", 30*time.Minute),
		EntrySessionMax: getEnvInt("ENTRY_SESSION_MAX", 256),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		SeedExampleData: getEnvBool("SEED_EXAMPLE_DATA", false),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		TUILogFile: getEnv("TUI_LOG_FILE", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validStores, c.LedgerStore) {
		errors = append(errors, fmt.Sprintf("invalid ledger store '%s': must be one of %v", c.LedgerStore, validStores))
	}

	if c.LedgerStore == "sqlite" {
		if c.SQLiteMemoryName == "" {
			errors = append(errors, "SQLite memory database name cannot be empty when using sqlite store")
		} else if strings.ContainsAny(c.SQLiteMemoryName, "/?#&") {
			errors = append(errors, fmt.Sprintf("invalid SQLite memory database name '%s': must not contain '/', '?', '#' or '&'", c.SQLiteMemoryName))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.EntrySessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid entry session TTL %v: must be at least 1 minute", c.EntrySessionTTL))
	} else if c.EntrySessionTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid entry session TTL %v: must be at most 24 hours", c.EntrySessionTTL))
	}

	if c.EntrySessionMax < 1 {
		errors = append(errors, fmt.Sprintf("invalid entry session max %d: must be at least 1", c.EntrySessionMax))
	} else if c.EntrySessionMax > 100000 {
		errors = append(errors, fmt.Sprintf("invalid entry session max %d: must be at most 100000", c.EntrySessionMax))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
