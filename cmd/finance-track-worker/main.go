// Command finance-track-worker consumes domain events from the broker and
// produces notification log entries.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/patilmallikarjuna1130-maker/finance-track/internal/cli"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/events"
	"github.com/patilmallikarjuna1130-maker/finance-track/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	logger.Info("Starting finance-track-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		repo.Close()
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		client.Close()
		repo.Close()
	})

	notifier := worker.NewNotifier(repo)
	go func() {
		err := client.Consume(ctx, func(event *events.Event) error {
			return notifier.HandleEvent(ctx, event)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Event consumption failed", "error", err)
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped")
}
