package minigame

import (
	"context"
	"strconv"
	"strings"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/reward"
)

// afterCommit records telemetry and publishes events. Nothing here can fail
// the action; it already committed.
func (s *service) afterCommit(ctx context.Context, req ActionRequest, area *domain.GameArea, out *resolution) {
	log := logger.FromContext(ctx)
	res := out.result

	if brk := out.toolBreak; brk != nil {
		s.sink.Record(*brk)
		log.Info(LogMsgToolBroke, "user_id", req.UserID, "guild_id", req.GuildID, "tool", brk.ToolKey, "remaining", brk.InstancesRemaining)
		s.publish(ctx, event.NewToolBrokenEvent(res.RunID, domain.ToolBrokenPayload{
			UserID:             req.UserID,
			GuildID:            req.GuildID,
			ToolKey:            brk.ToolKey,
			InstancesRemaining: brk.InstancesRemaining,
		}))
	}

	if p := res.Penalty; p != nil {
		s.publish(ctx, event.NewPlayerDefeatedEvent(res.RunID, domain.PlayerDefeatedPayload{
			UserID:             req.UserID,
			GuildID:            req.GuildID,
			AreaKey:            area.Key,
			CoinsLost:          p.CoinsLost,
			AutoDefeatNoWeapon: p.AutoDefeatNoWeapon,
		}))
	}

	payload := domain.ActionResolvedPayload{
		UserID:       req.UserID,
		GuildID:      req.GuildID,
		AreaKey:      area.Key,
		AreaType:     string(area.Type),
		Level:        res.Level,
		Outcome:      outcomeOf(res),
		CoinsAwarded: res.CoinsAwarded(),
	}
	if res.Combat != nil {
		payload.MobsDefeated = res.Combat.MobsDefeated
	}
	order, totals := reward.ItemTotals(res.Rewards)
	if len(order) > 0 {
		payload.ItemsAwarded = totals
	}
	s.publish(ctx, event.NewActionResolvedEvent(res.RunID, payload))

	log.Info(LogMsgActionResolved,
		"user_id", req.UserID, "guild_id", req.GuildID, "area", area.Key, "level", res.Level,
		"outcome", payload.Outcome, "coins", payload.CoinsAwarded, "items", itemSummary(order, totals),
		"run_id", res.RunID)
}

// itemSummary renders item totals as "key x2, other x1" in award order
func itemSummary(order []string, totals map[string]int) string {
	parts := make([]string, 0, len(order))
	for _, key := range order {
		parts = append(parts, key+" x"+strconv.Itoa(totals[key]))
	}
	return strings.Join(parts, ", ")
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
