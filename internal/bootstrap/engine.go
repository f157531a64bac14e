package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ActionEngine_Go/internal/config"
	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/database"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/minigame"
	"github.com/osse101/ActionEngine_Go/internal/mob"
	"github.com/osse101/ActionEngine_Go/internal/scheduler"
	"github.com/osse101/ActionEngine_Go/internal/telemetry"
	"github.com/osse101/ActionEngine_Go/internal/worker"
	"github.com/osse101/ActionEngine_Go/migrations"
)

// Engine is the wired action engine with the background pieces it owns
type Engine struct {
	Repos      *Repositories
	Workers    *worker.Pool
	Scheduler  *scheduler.Scheduler
	ToolBreaks *telemetry.RingBuffer
	Mobs       mob.Repository
	Service    minigame.Service
}

// ConnectDatabase opens the pool and applies migrations when configured
func ConnectDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMinConns,
		database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}
	slog.Info(LogMsgDatabaseConnected, "host", cfg.DBHost, "db", cfg.DBName)

	if cfg.MigrateOnRun {
		if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
	}
	return pool, nil
}

// InitializeEngine wires stores, caches, telemetry and the background
// maintenance schedule into a minigame service. The worker pool is started;
// callers stop it through GracefulShutdown.
func InitializeEngine(cfg *config.Config, pool *pgxpool.Pool, bus event.Bus) (*Engine, error) {
	decoder := content.NewDecoder()
	repos := InitializeRepositories(pool, decoder)

	catalog := content.NewCatalog(repos.Content, decoder, cfg.ContentCacheSize, cfg.ContentCacheTTL)
	mobs, err := mob.NewRepository(repos.Content, cfg.ContentCacheSize, MobCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMobRepository, err)
	}

	workers := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	workers.Start()

	ring := telemetry.NewRingBuffer(cfg.ToolBreakCapacity)
	sink := telemetry.NewPersistingSink(ring, repos.Minigame, workers)

	sched := scheduler.New(workers)
	if cfg.MaintenanceEvery > 0 {
		sched.Schedule(cfg.MaintenanceEvery, &worker.MaintenanceJob{
			Cooldowns: repos.Cooldowns,
			Effects:   repos.Minigame,
		})
		slog.Info(LogMsgMaintenanceJob, "interval", cfg.MaintenanceEvery)
	}

	svc := minigame.NewService(repos.Minigame, catalog, mobs, repos.Cooldowns, sink, bus, minigame.Config{
		Cooldown: cfg.Cooldown(),
		Fatigue:  cfg.Fatigue(),
	})

	slog.Info(LogMsgEngineReady,
		"tool_break_capacity", cfg.ToolBreakCapacity,
		"workers", cfg.WorkerCount,
		"dev_mode", cfg.DevMode)

	return &Engine{
		Repos:      repos,
		Workers:    workers,
		Scheduler:  sched,
		ToolBreaks: ring,
		Mobs:       mobs,
		Service:    svc,
	}, nil
}
