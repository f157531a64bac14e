package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all engine events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{event.ActionResolved, event.ToolBroken, event.PlayerDefeated} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.ActionResolved:
		var p domain.ActionResolvedPayload
		if p, err = event.DecodePayload[domain.ActionResolvedPayload](evt.Payload); err == nil {
			ActionsResolved.WithLabelValues(p.AreaType, p.Outcome).Inc()
			if p.CoinsAwarded > 0 {
				CoinsAwarded.Add(float64(p.CoinsAwarded))
			}
			for item, qty := range p.ItemsAwarded {
				ItemsAwarded.WithLabelValues(item).Add(float64(qty))
			}
		}
	case event.ToolBroken:
		var p domain.ToolBrokenPayload
		if p, err = event.DecodePayload[domain.ToolBrokenPayload](evt.Payload); err == nil {
			ToolBreaks.WithLabelValues(p.ToolKey).Inc()
		}
	case event.PlayerDefeated:
		var p domain.PlayerDefeatedPayload
		if p, err = event.DecodePayload[domain.PlayerDefeatedPayload](evt.Payload); err == nil {
			DeathPenalties.WithLabelValues(strconv.FormatBool(p.AutoDefeatNoWeapon)).Inc()
			if p.CoinsLost > 0 {
				CoinsLost.Add(float64(p.CoinsLost))
			}
		}
	}
	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
