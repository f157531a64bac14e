package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// CooldownPurger removes cooldown rows that no longer block anything
type CooldownPurger interface {
	PurgeInert(ctx context.Context) (int64, error)
}

// EffectPurger removes status effects past their expiry
type EffectPurger interface {
	PurgeExpiredEffects(ctx context.Context) (int64, error)
}

// MaintenanceJob purges inert cooldowns and expired status effects. Reads
// already ignore both, so the job only keeps the tables small.
type MaintenanceJob struct {
	Cooldowns CooldownPurger
	Effects   EffectPurger
}

// Process runs both purges and joins their errors
func (j *MaintenanceJob) Process(ctx context.Context) error {
	var errs []error
	var cooldowns, effects int64
	if j.Cooldowns != nil {
		n, err := j.Cooldowns.PurgeInert(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("purge cooldowns: %w", err))
		}
		cooldowns = n
	}
	if j.Effects != nil {
		n, err := j.Effects.PurgeExpiredEffects(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("purge effects: %w", err))
		}
		effects = n
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	logger.FromContext(ctx).Debug(LogMsgMaintenanceRun, "cooldowns", cooldowns, "effects", effects)
	return nil
}
