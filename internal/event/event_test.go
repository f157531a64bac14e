package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(ToolBroken, func(ctx context.Context, ev Event) error {
		payload, err := DecodePayload[domain.ToolBrokenPayload](ev.Payload)
		require.NoError(t, err)
		assert.Equal(t, "pickaxe", payload.ToolKey)
		assert.Equal(t, "run-1", ev.GetMetadataValue(MetadataRunID))
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewToolBrokenEvent("run-1", domain.ToolBrokenPayload{ToolKey: "pickaxe"}))
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, ev Event) error {
		count++
		return nil
	}
	bus.Subscribe(ActionResolved, handler)
	bus.Subscribe(ActionResolved, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: ActionResolved}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	boom := errors.New("handler error")
	bus.Subscribe(PlayerDefeated, func(ctx context.Context, ev Event) error { return boom })

	err := bus.Publish(context.Background(), Event{Version: EventSchemaVersion, Type: PlayerDefeated})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: "unknown"}))
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u1", "coins_lost": 12}
	got, err := DecodePayload[domain.PlayerDefeatedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, int64(12), got.CoinsLost)
}

func TestCalculateRetryDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    int
	}{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 16},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, int(CalculateRetryDelay(1, tt.attempt)), "attempt %d", tt.attempt)
	}
}
