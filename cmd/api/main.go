package main

import (
	"context"
	"net/http"
	"os"

	"github.com/bashfilms/quote-backend/api/routes"
	"github.com/bashfilms/quote-backend/internal/handoff"
	"github.com/bashfilms/quote-backend/internal/quotes"
	"github.com/bashfilms/quote-backend/pkg/config"
	"github.com/bashfilms/quote-backend/pkg/instance"
	"github.com/bashfilms/quote-backend/pkg/logger"
	"github.com/bashfilms/quote-backend/pkg/mailer"
	"github.com/bashfilms/quote-backend/pkg/metrics"
	"github.com/bashfilms/quote-backend/pkg/pubsub"
	"github.com/bashfilms/quote-backend/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	quoteMetrics := metrics.NewQuoteMetrics(registry)

	var pubsubPinger *pubsub.Client
	var submitter handoff.Submitter
	switch cfg.Handoff.Strategy {
	case config.StrategyFrame:
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()
		pubsubPinger = pubsubClient

		frame, err := handoff.NewFrameSubmitter(pubsubClient.HandoffPublisher(), cfg.Handoff, logg, quoteMetrics)
		if err != nil {
			logg.Error(context.Background(), "failed to create frame submitter", err)
			os.Exit(1)
		}
		defer frame.Close()
		submitter = frame
	default:
		var sender handoff.MailSender
		if cfg.Sendgrid.APIKey != "" {
			client, err := mailer.NewClient(cfg.Sendgrid.APIKey, cfg.Sendgrid.DefaultFrom)
			if err != nil {
				logg.Error(context.Background(), "failed to create mail client", err)
				os.Exit(1)
			}
			sender = client
		}
		mail, err := handoff.NewMailSubmitter(sender, cfg.Handoff.MailTo, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mail submitter", err)
			os.Exit(1)
		}
		submitter = mail
	}

	quoteService, err := quotes.NewService(quotes.ServiceParams{
		Submitter: submitter,
		Flags:     redisClient,
		Handoff:   cfg.Handoff,
		Logger:    logg,
		Metrics:   quoteMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"strategy": cfg.Handoff.Strategy,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	routerParams := routes.RouterParams{
		Config:       cfg,
		Logger:       logg,
		QuoteService: quoteService,
		RedisPinger:  redisClient,
		Registry:     registry,
	}
	if pubsubPinger != nil {
		routerParams.PubSubPinger = pubsubPinger
	}

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(routerParams),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
