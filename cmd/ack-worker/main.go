package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/bashfilms/quote-backend/internal/handoff"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/metrics"
	"github.com/bashfilms/quote-backend/pkg/pubsub"
	"github.com/bashfilms/quote-backend/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "ack-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	cfg.Service.Kind = config.ServiceKindAckWorker

	logg = logger.New(logger.Options{
		ServiceName: "ack-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	requireResource(ctx, logg, "redis", err)
	defer redisClient.Close()

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer pubsubClient.Close()

	quoteMetrics := metrics.NewQuoteMetrics(prometheus.NewRegistry())

	ackConsumer, err := handoff.NewAckConsumer(
		pubsubClient.AckSubscription(),
		redisClient,
		cfg.Handoff,
		logg,
		quoteMetrics,
	)
	requireResource(ctx, logg, "ack consumer", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"serviceKind": cfg.Service.Kind,
		"env":         cfg.App.Env,
	})
	logg.Info(runCtx, "ack worker ready")

	if err := ackConsumer.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "ack worker not working", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
