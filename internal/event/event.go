package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Engine event types
const (
	ActionResolved Type = Type(domain.EventTypeActionResolved)
	ToolBroken     Type = Type(domain.EventTypeToolBroken)
	PlayerDefeated Type = Type(domain.EventTypePlayerDefeated)
)

// MetadataRunID is the metadata key carrying the action run id
const MetadataRunID = "run_id"

// NewActionResolvedEvent creates an action resolved event
func NewActionResolvedEvent(runID string, payload domain.ActionResolvedPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ActionResolved,
		Payload:  payload,
		Metadata: Metadata{MetadataRunID: runID},
	}
}

// NewToolBrokenEvent creates a tool broken event
func NewToolBrokenEvent(runID string, payload domain.ToolBrokenPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     ToolBroken,
		Payload:  payload,
		Metadata: Metadata{MetadataRunID: runID},
	}
}

// NewPlayerDefeatedEvent creates a player defeated event
func NewPlayerDefeatedEvent(runID string, payload domain.PlayerDefeatedPayload) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     PlayerDefeated,
		Payload:  payload,
		Metadata: Metadata{MetadataRunID: runID, "at": time.Now().UTC()},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errors.Join(errs...))
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
