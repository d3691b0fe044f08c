package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/config"
	"orderflow/internal/infrastructure/logger"
	"orderflow/internal/infrastructure/postgres"
	"orderflow/internal/infrastructure/telemetry"
	"orderflow/internal/messaging"
	"orderflow/internal/order"
	"orderflow/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	telemetryProvider, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		zapLogger.Fatal("setting up telemetry", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool, zapLogger); err != nil {
		zapLogger.Fatal("initializing database", zap.Error(err))
	}
	zapLogger.Info("database connected")

	publisher := messaging.NewPublisher(cfg.RabbitMQ, zapLogger)
	defer publisher.Close()

	orderCtrl, err := order.NewModule(pool, publisher, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("wiring order module", zap.Error(err))
	}

	router := server.NewRouter(orderCtrl, cfg.CORS, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		zapLogger.Warn("telemetry shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
