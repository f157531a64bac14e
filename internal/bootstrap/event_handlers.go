package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector and the audit logger
func RegisterEventHandlers(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	bus.Subscribe(event.ToolBroken, auditToolBroken)
	bus.Subscribe(event.PlayerDefeated, auditPlayerDefeated)
	slog.Info(LogMsgEventAuditRegistered)
}

func auditToolBroken(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.ToolBrokenPayload](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgToolBroken,
		"run_id", evt.GetMetadataValue(event.MetadataRunID),
		"user_id", p.UserID,
		"guild_id", p.GuildID,
		"tool", p.ToolKey)
	return nil
}

func auditPlayerDefeated(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.PlayerDefeatedPayload](evt.Payload)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgPlayerDefeated,
		"run_id", evt.GetMetadataValue(event.MetadataRunID),
		"user_id", p.UserID,
		"guild_id", p.GuildID,
		"coins_lost", p.CoinsLost,
		"auto_defeat", p.AutoDefeatNoWeapon)
	return nil
}
