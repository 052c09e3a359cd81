package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/monsoonworks/rainharvest-service/internal/adapter/http"
	kafkaadapter "github.com/monsoonworks/rainharvest-service/internal/adapter/kafka"
	"github.com/monsoonworks/rainharvest-service/internal/adapter/memstore"
	"github.com/monsoonworks/rainharvest-service/internal/adapter/openmeteo"
	"github.com/monsoonworks/rainharvest-service/internal/adapter/postgres"
	"github.com/monsoonworks/rainharvest-service/internal/config"
	"github.com/monsoonworks/rainharvest-service/internal/domain"
	"github.com/monsoonworks/rainharvest-service/internal/engine"
	"github.com/monsoonworks/rainharvest-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Climate source (feature-flagged via CLIMATE_API_ENABLED). When disabled
	// the engine resolves rainfall from the static regional tables only.
	var climate domain.ClimateDataSource
	if cfg.ClimateAPIEnabled {
		client := openmeteo.NewClient(cfg.ClimateAPITimeout, metrics, logger)
		climate = openmeteo.NewCachedSource(client, cfg.ClimateAPICacheSize, metrics)
		metrics.ClimateAPIEnabled.Set(1)
		logger.Info("climate API enabled", "cache_size", cfg.ClimateAPICacheSize, "timeout", cfg.ClimateAPITimeout)
	} else {
		logger.Info("climate API disabled, using static regional tables")
	}

	// Store: Postgres when DATABASE_URL is set, in-memory demo store otherwise.
	var store engine.AssessmentStore
	var closeStore func() error
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open postgres store", "error", err)
			os.Exit(1)
		}
		store = pg
		closeStore = pg.Close
		logger.Info("postgres store connected")
	} else {
		store = memstore.New()
		logger.Info("in-memory store active; records are lost on restart")
	}

	// Assessment event publisher (feature-flagged via KAFKA_ENABLED).
	var publisher engine.EventPublisher
	var closePublisher func() error
	if cfg.KafkaEnabled {
		kp := kafkaadapter.NewPublisher(cfg, logger)
		publisher = kp
		closePublisher = kp.Close
		logger.Info("assessment event publishing enabled", "topic", cfg.KafkaSinkTopic)
	}

	assessor := engine.New(climate, store, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, assessor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if closePublisher != nil {
		if err := closePublisher(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
