package telemetry

import (
	"context"
	"fmt"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/metrics"
	"github.com/osse101/ActionEngine_Go/internal/worker"
)

// Repository stores tool break events durably
type Repository interface {
	RecordToolBreak(ctx context.Context, ev domain.ToolBreakEvent) error
}

// Enqueuer accepts jobs without blocking
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// PersistingSink records into an inner sink and queues a write to the
// repository. A full queue drops the write; the inner sink still has it.
type PersistingSink struct {
	inner Sink
	repo  Repository
	pool  Enqueuer
}

// NewPersistingSink decorates inner with best-effort persistence
func NewPersistingSink(inner Sink, repo Repository, pool Enqueuer) *PersistingSink {
	return &PersistingSink{inner: inner, repo: repo, pool: pool}
}

// Record implements Sink
func (s *PersistingSink) Record(ev domain.ToolBreakEvent) {
	s.inner.Record(ev)
	if !s.pool.TryEnqueue(&persistJob{repo: s.repo, event: ev}) {
		metrics.TelemetryDropped.Inc()
		logger.FromContext(context.Background()).Warn(LogMsgPersistDropped,
			"user_id", ev.UserID, "guild_id", ev.GuildID, "tool_key", ev.ToolKey)
	}
}

// Query reads from the inner sink
func (s *PersistingSink) Query(limit int, f Filter) []domain.ToolBreakEvent {
	return s.inner.Query(limit, f)
}

type persistJob struct {
	repo  Repository
	event domain.ToolBreakEvent
}

func (j *persistJob) Process(ctx context.Context) error {
	if err := j.repo.RecordToolBreak(ctx, j.event); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPersistFailed, "tool_key", j.event.ToolKey, "error", err)
		return fmt.Errorf(ErrMsgPersist, j.event.GuildID, j.event.UserID, err)
	}
	return nil
}
