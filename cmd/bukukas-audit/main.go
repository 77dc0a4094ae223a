package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bukukas/internal/amqp"
	"bukukas/internal/config"
	applog "bukukas/internal/log"
	"bukukas/internal/worker"
)

// bukukas-audit logs every ledger event published by the other binaries.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: applog.ComponentAudit,
		Output:    os.Stdout,
	})
	applog.SetDefault(logger)

	logger.Info("Starting bukukas-audit")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit consumer")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audit := worker.NewAuditWorker(logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.Consume(gctx, audit.HandleEvent)
	})

	err = g.Wait()
	if cerr := client.Close(); cerr != nil {
		logger.Warn("Failed to close AMQP client", "error", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Consumer stopped with error", "error", err)
		os.Exit(1)
	}
	stats := audit.Stats()
	logger.Info("bukukas-audit stopped",
		"added", stats.Added,
		"removed", stats.Removed,
		"ignored", stats.Ignored)
}
