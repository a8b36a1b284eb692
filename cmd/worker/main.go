package main

import (
	"log/slog"
	"os"

	"github.com/Rohit6800/UniStay/internal/activities"
	"github.com/Rohit6800/UniStay/internal/config"
	"github.com/Rohit6800/UniStay/internal/events"
	"github.com/Rohit6800/UniStay/internal/workflows"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	hostPort := cfg.Temporal.HostPort
	if hostPort == "" {
		hostPort = client.DefaultHostPort
	}

	// Kafka producer for booking events
	producer := events.NewProducer(events.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
	defer producer.Close()
	slog.Info("publishing booking events", "brokers", cfg.Kafka.Brokers, "topic", producer.Topic())

	// Connect to Temporal
	slog.Info("connecting to temporal", "host", hostPort)
	c, err := client.Dial(client.Options{
		HostPort: hostPort,
		Logger:   slog.Default(),
	})
	if err != nil {
		slog.Error("failed to connect to temporal", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.BookingWorkflow)
	w.RegisterActivity(activities.New(producer))

	slog.Info("starting temporal worker", "taskQueue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		slog.Error("worker failed", "error", err)
		os.Exit(1)
	}
}
