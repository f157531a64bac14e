package bootstrap

import (
	"context"
	"log/slog"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/osse101/ActionEngine_Go/internal/database"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/scheduler"
	"github.com/osse101/ActionEngine_Go/internal/worker"
)

// Stopper is anything that can be stopped with a deadline, such as the HTTP server
type Stopper interface {
	Stop(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             Stopper
	Scheduler          *scheduler.Scheduler
	Workers            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Tracing            *sdktrace.TracerProvider
	DBPool             database.Pool
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler, then the worker pool
// 3. Event publisher (flush pending retries)
// 4. Tracer provider (flush batched spans)
// 5. Database pool
//
// Errors are logged and do not stop the sequence. Nil components are skipped.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Workers != nil {
		c.Workers.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Tracing != nil {
		slog.Info(LogMsgShuttingDownTracing)
		if err := c.Tracing.Shutdown(ctx); err != nil {
			slog.Error(LogMsgTracingShutdownFail, "error", err)
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
