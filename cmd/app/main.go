package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/bootstrap"
	"github.com/osse101/ActionEngine_Go/internal/config"
	"github.com/osse101/ActionEngine_Go/internal/server"
)

// @title Action Engine API
// @version 1.0
// @description Resolves mine, fish, fight and farm actions against configured areas.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Invalid environment", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(bootstrap.LogMsgConfigWarning, "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		slog.Error("Database startup failed", "error", err)
		os.Exit(1)
	}

	tracing, err := bootstrap.SetupTracing(ctx, cfg)
	if err != nil {
		slog.Error("Tracing startup failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system startup failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	}
	bootstrap.RegisterEventHandlers(eventBus)

	engine, err := bootstrap.InitializeEngine(cfg, dbPool, publisher)
	if err != nil {
		slog.Error("Engine startup failed", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		TrustedProxies:  cfg.TrustedProxies,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	}, dbPool, engine.Service, engine.Mobs)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          engine.Scheduler,
		Workers:            engine.Workers,
		ResilientPublisher: publisher,
		Tracing:            tracing,
		DBPool:             dbPool,
	})
}
