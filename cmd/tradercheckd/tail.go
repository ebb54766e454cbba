package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/internal/infrastructure/config"
	"github.com/tradercheck/tradercheck/internal/infrastructure/kafka"
	pkgkafka "github.com/tradercheck/tradercheck/pkg/kafka"
	"github.com/tradercheck/tradercheck/pkg/observability"
)

var tailSearchesCmd = &cobra.Command{
	Use:   "tail-searches",
	Short: "Print SearchPerformed events from the event topic",
	Long: `Consume the configured Kafka topic and print every search event as
one JSON line. Set KAFKA_CONSUMER_GROUP to resume from committed offsets;
without it the tail starts at the newest message.`,
	Args: cobra.NoArgs,
	RunE: runTailSearches,
}

func runTailSearches(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.Kafka.Enabled() {
		return errors.New("KAFKA_BROKERS is not set")
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "text",
		Service: "tail-searches",
		Output:  cmd.ErrOrStderr(),
	})

	out := json.NewEncoder(cmd.OutOrStdout())
	handler := func(_ context.Context, msg pkgkafka.Message) error {
		evt, ok, err := kafka.DecodeSearchPerformed(msg)
		if err != nil || !ok {
			return err
		}
		return out.Encode(evt)
	}

	consumer, err := pkgkafka.NewConsumer(kafkaConfig(cfg.Kafka), cfg.Kafka.Topic, handler, logger)
	if err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return consumer.Start(ctx)
}
