package statuseffect

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// Store is the slice of the transactional repository the effect stack needs
type Store interface {
	DeleteExpiredStatusEffects(ctx context.Context, userID, guildID string, now time.Time) (int64, error)
	GetStatusEffects(ctx context.Context, userID, guildID string) ([]domain.StatusEffect, error)
	UpsertStatusEffect(ctx context.Context, effect domain.StatusEffect) error
}

// Service reads and writes status effects through a caller-provided store so
// it participates in the caller's transaction
type Service interface {
	// Active deletes expired rows for the player and returns the rest
	Active(ctx context.Context, store Store, userID, guildID string) ([]domain.StatusEffect, error)

	// Apply replaces any effect of the same type
	Apply(ctx context.Context, store Store, effect domain.StatusEffect) error
}

type service struct {
	now func() time.Time
}

// NewService creates a status effect service using the wall clock
func NewService() Service {
	return &service{now: time.Now}
}

// NewServiceWithClock creates a status effect service with an injected clock
func NewServiceWithClock(now func() time.Time) Service {
	return &service{now: now}
}

func (s *service) Active(ctx context.Context, store Store, userID, guildID string) ([]domain.StatusEffect, error) {
	now := s.now()

	purged, err := store.DeleteExpiredStatusEffects(ctx, userID, guildID, now)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPurgeExpiredFailed, err)
	}
	if purged > 0 {
		logger.FromContext(ctx).Debug(LogMsgExpiredEffectsPurged, "user_id", userID, "guild_id", guildID, "count", purged)
	}

	effects, err := store.GetStatusEffects(ctx, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadEffectsFailed, err)
	}

	active := effects[:0]
	for _, eff := range effects {
		if !eff.IsExpired(now) {
			active = append(active, eff)
		}
	}
	return active, nil
}

func (s *service) Apply(ctx context.Context, store Store, effect domain.StatusEffect) error {
	if err := store.UpsertStatusEffect(ctx, effect); err != nil {
		return fmt.Errorf(ErrMsgApplyEffectFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgEffectApplied,
		"user_id", effect.UserID, "guild_id", effect.GuildID, "type", effect.Type, "magnitude", effect.Magnitude)
	return nil
}
