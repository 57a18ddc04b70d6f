package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/analyzer"
	"github.com/spacesedan/reviewlens/internal/api"
	"github.com/spacesedan/reviewlens/internal/artifacts"
	"github.com/spacesedan/reviewlens/internal/clients/kafka_client"
	"github.com/spacesedan/reviewlens/internal/inference"
	"github.com/spacesedan/reviewlens/internal/issuelog"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spacesedan/reviewlens/internal/monitoring"
)

func main() {
	config.LoadEnv(config.AppEnv())
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ArtifactS3URI != "" {
		if err := artifacts.Fetch(ctx, cfg.ArtifactS3URI, cfg.ArtifactDir, cfg.AWSRegion, cfg.AWSEndpoint); err != nil {
			slog.Error("[Main] Failed to fetch artifacts", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	engine, err := inference.Load(cfg.ArtifactDir)
	if err != nil {
		slog.Error("[Main] Failed to load artifacts", slog.String("error", err.Error()))
		os.Exit(1)
	}

	issueLog, err := issuelog.Open(ctx, cfg)
	if err != nil {
		slog.Error("[Main] Failed to open issue log", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer issueLog.Close()

	svc := analyzer.New(engine, issueLog)

	var notifier *kafka_client.Notifier
	if cfg.KafkaEnabled() {
		producer, err := kafka_client.NewIssueProducer(kafka_client.GetKafkaConfig(cfg.KafkaBroker, cfg.KafkaIssuesTopic))
		if err != nil {
			slog.Warn("[Main] Kafka unavailable, issue notifications disabled",
				slog.String("error", err.Error()))
		} else {
			defer producer.Close()
			notifier = kafka_client.NewNotifier(producer, kafka_client.BATCH_SIZE, kafka_client.BATCH_TIMEOUT)
			notifier.Start(ctx)
			svc.WithNotifier(notifier)
		}
	}

	issueLogHealthy := &atomic.Bool{}
	issueLogHealthy.Store(true)
	go monitoring.MonitorIssueLogHealth(ctx, issueLog, issueLogHealthy, 0)

	server := api.NewServer(svc, api.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitRPS:    cfg.RateLimitRPS,
		ModelVersion:    engine.ModelVersion(),
		VocabularySize:  engine.VocabularySize(),
		IssueLogBackend: issueLog.Backend(),
		IssueLogHealthy: issueLogHealthy,
		IssueLogBreaker: issueLog.BreakerState,
	})

	if err := server.Run(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("[Main] Server stopped", slog.String("error", err.Error()))
	}

	stop()
	if notifier != nil {
		notifier.Wait()
	}
	slog.Info("[Main] Shutdown complete")
}
