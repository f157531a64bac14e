// Package minigame resolves player actions against configured areas. Every
// state change made by one action commits in a single transaction.
package minigame

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/ActionEngine_Go/internal/concurrency"
	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/mob"
	"github.com/osse101/ActionEngine_Go/internal/repository"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
	"github.com/osse101/ActionEngine_Go/internal/telemetry"
	"github.com/osse101/ActionEngine_Go/internal/utils"
)

// ActionRequest is one player-initiated action
type ActionRequest struct {
	UserID  string `json:"user_id" validate:"required,max=64"`
	GuildID string `json:"guild_id" validate:"required,max=64"`
	AreaKey string `json:"area_key" validate:"required,max=64"`
	Level   int    `json:"level" validate:"required,min=1"`
	ToolKey string `json:"tool_key,omitempty" validate:"omitempty,max=64"`
}

func requirePlayer(userID, guildID string) error {
	switch {
	case userID == "":
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgMissingUserID)
	case guildID == "":
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgMissingGuildID)
	}
	return nil
}

// Validate checks the request shape before any lookup
func (r ActionRequest) Validate() error {
	if err := requirePlayer(r.UserID, r.GuildID); err != nil {
		return err
	}
	switch {
	case r.AreaKey == "":
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgMissingAreaKey)
	case r.Level < 1:
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgBadLevel)
	case len(r.UserID) > MaxIDLength, len(r.GuildID) > MaxIDLength,
		len(r.AreaKey) > MaxKeyLength, len(r.ToolKey) > MaxKeyLength:
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgFieldTooLong)
	}
	return nil
}

// Service defines the action resolution business logic
type Service interface {
	// ResolveAction validates, resolves and commits one action. An
	// auto-defeat is a committed result; check ActionResult.Err.
	ResolveAction(ctx context.Context, req ActionRequest) (*domain.ActionResult, error)

	// GetCooldowns lists the player's active cooldowns
	GetCooldowns(ctx context.Context, userID, guildID string) ([]domain.ActionCooldown, error)

	// ResetCooldown clears the cooldown of one area (admin)
	ResetCooldown(ctx context.Context, userID, guildID, areaKey string) error

	// ListDeathLogs returns the newest death penalties of a player
	ListDeathLogs(ctx context.Context, userID, guildID string, limit int) ([]domain.DeathLog, error)

	// ToolBreaks queries the in-process tool break telemetry, newest first
	ToolBreaks(limit int, filter telemetry.Filter) []domain.ToolBreakEvent
}

// Config tunes a Service. Zero Now and Seed fall back to the wall clock and
// crypto/rand; a nil TracerProvider falls back to the global one.
type Config struct {
	Cooldown       cooldown.Config
	Fatigue        statuseffect.DeathFatigueConfig
	Now            func() time.Time
	Seed           func() int64
	TracerProvider trace.TracerProvider
}

type service struct {
	repo      repository.Minigame
	catalog   content.Catalog
	mobs      mob.Repository
	cooldowns cooldown.Service
	effects   statuseffect.Service
	sink      telemetry.Sink
	bus       event.Bus
	locks     *concurrency.LockManager
	tracer    trace.Tracer
	cfg       Config
	now       func() time.Time
	seed      func() int64
}

// NewService creates a new minigame service. bus may be nil.
func NewService(
	repo repository.Minigame,
	catalog content.Catalog,
	mobs mob.Repository,
	cooldowns cooldown.Service,
	sink telemetry.Sink,
	bus event.Bus,
	cfg Config,
) Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == nil {
		seed = utils.NewSeed
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if cfg.Fatigue == (statuseffect.DeathFatigueConfig{}) {
		cfg.Fatigue = statuseffect.DefaultDeathFatigueConfig()
	}
	return &service{
		repo:      repo,
		catalog:   catalog,
		mobs:      mobs,
		cooldowns: cooldowns,
		effects:   statuseffect.NewServiceWithClock(now),
		sink:      sink,
		bus:       bus,
		locks:     concurrency.NewLockManager(),
		tracer:    tp.Tracer(TracerName),
		cfg:       cfg,
		now:       now,
		seed:      seed,
	}
}

func (s *service) GetCooldowns(ctx context.Context, userID, guildID string) ([]domain.ActionCooldown, error) {
	if err := requirePlayer(userID, guildID); err != nil {
		return nil, err
	}
	cds, err := s.cooldowns.List(ctx, userID, guildID)
	if err != nil {
		return nil, classify(err)
	}
	return cds, nil
}

func (s *service) ResetCooldown(ctx context.Context, userID, guildID, areaKey string) error {
	if err := requirePlayer(userID, guildID); err != nil {
		return err
	}
	if areaKey == "" {
		return fmt.Errorf(ErrMsgInvalidRequestFmt, domain.ErrInvalidInput, ErrMsgMissingAreaKey)
	}
	return classify(s.cooldowns.Reset(ctx, userID, guildID, cooldown.Key(areaKey)))
}

func (s *service) ListDeathLogs(ctx context.Context, userID, guildID string, limit int) ([]domain.DeathLog, error) {
	if err := requirePlayer(userID, guildID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultDeathLogLimit
	}
	limit = min(limit, MaxDeathLogLimit)
	logs, err := s.repo.ListDeathLogs(ctx, userID, guildID, limit)
	if err != nil {
		return nil, classify(err)
	}
	return logs, nil
}

func (s *service) ToolBreaks(limit int, filter telemetry.Filter) []domain.ToolBreakEvent {
	return s.sink.Query(limit, filter)
}
