package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
)

func TestEventMetricsCollector_ActionResolved(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	counter := ActionsResolved.WithLabelValues("MINE", "win")
	before := testutil.ToFloat64(counter)
	coinsBefore := testutil.ToFloat64(CoinsAwarded)
	ore := ItemsAwarded.WithLabelValues("ore.copper")
	oreBefore := testutil.ToFloat64(ore)

	err := bus.Publish(context.Background(), event.NewActionResolvedEvent("run", domain.ActionResolvedPayload{
		AreaType: "MINE", Outcome: "win", CoinsAwarded: 40,
		ItemsAwarded: map[string]int{"ore.copper": 3},
	}))
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, coinsBefore+40, testutil.ToFloat64(CoinsAwarded))
	assert.Equal(t, oreBefore+3, testutil.ToFloat64(ore))
}

func TestEventMetricsCollector_ToolBrokenAndDefeat(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	breaks := ToolBreaks.WithLabelValues("pickaxe.stone")
	deaths := DeathPenalties.WithLabelValues("true")
	b0, d0, l0 := testutil.ToFloat64(breaks), testutil.ToFloat64(deaths), testutil.ToFloat64(CoinsLost)

	require.NoError(t, bus.Publish(context.Background(), event.NewToolBrokenEvent("run", domain.ToolBrokenPayload{ToolKey: "pickaxe.stone"})))
	require.NoError(t, bus.Publish(context.Background(), event.NewPlayerDefeatedEvent("run", domain.PlayerDefeatedPayload{
		AutoDefeatNoWeapon: true, CoinsLost: 7,
	})))

	assert.Equal(t, b0+1, testutil.ToFloat64(breaks))
	assert.Equal(t, d0+1, testutil.ToFloat64(deaths))
	assert.Equal(t, l0+7, testutil.ToFloat64(CoinsLost))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	errs := EventHandlerErrors.WithLabelValues(string(event.ToolBroken))
	before := testutil.ToFloat64(errs)

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{Type: event.ToolBroken, Payload: "nope"})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(errs))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/players/{id}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
