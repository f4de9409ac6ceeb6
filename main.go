// package main provides the entry point for the governance-backend microservice,
// which serves the DAO governance REST and GraphQL APIs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ortelius/governance-backend/database"
	dao "github.com/ortelius/governance-backend/events/modules/daos"
	"github.com/ortelius/governance-backend/internal/api"
	"github.com/ortelius/governance-backend/internal/config"
	"github.com/ortelius/governance-backend/internal/kafka"
	"github.com/ortelius/governance-backend/internal/services"
	"github.com/ortelius/governance-backend/restapi/modules/auth"
	"github.com/ortelius/governance-backend/util"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	logger := util.InitLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	auth.Configure(cfg.JWTSecret, cfg.JWTTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var store services.Store
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("using in-memory store, state is lost on restart")
		store = database.NewMemoryStore()
	default:
		db, err := database.InitializeDatabase(ctx, cfg.Arango, logger)
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		store = db
	}

	// Initialize event publication
	var publisher dao.Publisher = dao.Noop{}
	if cfg.Kafka.Enabled() {
		publisher = dao.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, cfg.Kafka.APIKey, cfg.Kafka.APISecret)
	}
	defer func() { _ = publisher.Close() }()

	svc := services.NewGovernanceService(store, publisher, logger)
	if err := svc.Load(ctx); err != nil {
		logger.Fatal("failed to load governance state", zap.Error(err))
	}

	if cfg.SeedPath != "" && util.FileExists(cfg.SeedPath) {
		seed, err := services.LoadSeed(cfg.SeedPath)
		if err != nil {
			logger.Fatal("failed to load seed", zap.String("path", cfg.SeedPath), zap.Error(err))
		}
		if _, err := svc.ApplySeed(ctx, seed); err != nil {
			logger.Fatal("failed to apply seed", zap.Error(err))
		}
	}

	if cfg.Kafka.Enabled() {
		if err := kafka.RunEventProcessor(ctx, cfg.Kafka, svc, logger); err != nil {
			logger.Error("kafka event processor not started", zap.Error(err))
		}
	}

	app, err := api.NewFiberApp(svc, cfg.CORSOrigins, logger)
	if err != nil {
		logger.Fatal("failed to create GraphQL schema", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = app.Shutdown()
	}()

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Port))
	logger.Info("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
