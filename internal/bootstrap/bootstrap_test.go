package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/osse101/ActionEngine_Go/internal/config"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/scheduler"
	"github.com/osse101/ActionEngine_Go/internal/worker"
)

type MockStopper struct {
	mock.Mock
}

func (m *MockStopper) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func keepDefaultLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-01_00-00-00"))
	assert.Contains(t, logs, fmt.Sprintf(LogFileNamePattern, "2026-01-12_00-00-00"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSetupLogger(t *testing.T) {
	t.Run("stdout only without log dir", func(t *testing.T) {
		keepDefaultLogger(t)
		f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "text"})
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("writes a session file", func(t *testing.T) {
		keepDefaultLogger(t)
		dir := filepath.Join(t.TempDir(), "logs")
		f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "json", LogDir: dir})
		require.NoError(t, err)
		require.NotNil(t, f)
		t.Cleanup(func() { f.Close() })

		data, err := os.ReadFile(f.Name())
		require.NoError(t, err)
		assert.Contains(t, string(data), LogMsgStartingEngine)
	})
}

func TestInitializeEventSystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "deadletter.jsonl")
	bus, publisher, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: path})
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)
	t.Cleanup(func() { _ = publisher.Shutdown(context.Background()) })

	assert.DirExists(t, filepath.Dir(path))
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := event.NewMemoryBus()
	RegisterEventHandlers(bus)

	err := bus.Publish(context.Background(), event.NewToolBrokenEvent("run-1", domain.ToolBrokenPayload{
		UserID: "u1", GuildID: "g1", ToolKey: "pickaxe.iron",
	}))
	assert.NoError(t, err)

	err = bus.Publish(context.Background(), event.NewPlayerDefeatedEvent("run-2", domain.PlayerDefeatedPayload{
		UserID: "u1", GuildID: "g1", CoinsLost: 50, AutoDefeatNoWeapon: true,
	}))
	assert.NoError(t, err)
}

func TestGracefulShutdown(t *testing.T) {
	t.Run("stops every component", func(t *testing.T) {
		srv := &MockStopper{}
		srv.On("Stop", mock.Anything).Return(nil)

		pool := worker.NewPool(1, 1)
		pool.Start()
		sched := scheduler.New(pool)

		GracefulShutdown(context.Background(), ShutdownComponents{
			Server:    srv,
			Scheduler: sched,
			Workers:   pool,
		})

		srv.AssertExpectations(t)
		assert.False(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))
	})

	t.Run("server error does not abort", func(t *testing.T) {
		srv := &MockStopper{}
		srv.On("Stop", mock.Anything).Return(assert.AnError)
		pool := worker.NewPool(1, 1)
		pool.Start()

		GracefulShutdown(context.Background(), ShutdownComponents{Server: srv, Workers: pool})

		srv.AssertExpectations(t)
		assert.False(t, pool.TryEnqueue(worker.JobFunc(func(context.Context) error { return nil })))
	})

	t.Run("flushes pending spans", func(t *testing.T) {
		exporter := &countingExporter{}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		_, span := tp.Tracer("test").Start(context.Background(), "in-flight")
		span.End()

		GracefulShutdown(context.Background(), ShutdownComponents{Tracing: tp})

		exporter.mu.Lock()
		defer exporter.mu.Unlock()
		assert.Equal(t, 1, exporter.exported)
		assert.True(t, exporter.stopped)
	})

	t.Run("nil components", func(t *testing.T) {
		assert.NotPanics(t, func() {
			GracefulShutdown(context.Background(), ShutdownComponents{})
		})
	})
}

// countingExporter counts exported spans and keeps the count after shutdown
type countingExporter struct {
	mu       sync.Mutex
	exported int
	stopped  bool
}

func (e *countingExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exported += len(spans)
	return nil
}

func (e *countingExporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	return nil
}
