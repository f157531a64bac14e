package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/minigame"
	"github.com/osse101/ActionEngine_Go/internal/mob"
	"github.com/osse101/ActionEngine_Go/internal/telemetry"
)

type stubPool struct{}

func (stubPool) Ping(context.Context) error { return nil }
func (stubPool) Close()                     {}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	repo := minigame.NewFakeRepository()
	repo.SetClock(func() time.Time { return now })
	repo.AddArea(domain.GameAreaRecord{
		ID: "area-lagoon", Key: "lagoon", Name: "Lagoon", Type: string(domain.AreaTypeLagoon),
		Config: json.RawMessage(`{"cooldownSeconds":30}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "lagoon-1", AreaID: "area-lagoon", Level: 1,
		Rewards: json.RawMessage(`{"table":[{"type":"coins","amount":100,"weight":1}]}`),
	})

	mobs, err := mob.NewRepository(repo, 0, 0)
	require.NoError(t, err)
	catalog := content.NewCatalog(repo, content.NewDecoder(), 0, 0)
	svc := minigame.NewService(repo, catalog, mobs, repo, telemetry.NewRingBuffer(telemetry.DefaultCapacity), nil, minigame.Config{
		Now:  func() time.Time { return now },
		Seed: func() int64 { return 1 },
	})

	return NewServer(opts, stubPool{}, svc, mobs).Handler()
}

func do(h http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_ResolveActionThenCooldown(t *testing.T) {
	h := newTestServer(t, Options{Port: 0})
	body := `{"user_id":"u1","guild_id":"g1","area_key":"lagoon","level":1}`

	w := do(h, http.MethodPost, "/api/v1/minigame/actions", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		RunID   string `json:"run_id"`
		AreaKey string `json:"area_key"`
		Rewards []struct {
			Amount int64 `json:"amount"`
		} `json:"rewards"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "lagoon", res.AreaKey)
	require.Len(t, res.Rewards, 1)
	assert.Equal(t, int64(100), res.Rewards[0].Amount)

	w = do(h, http.MethodPost, "/api/v1/minigame/actions", body, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	var errResp struct {
		ErrorTag    string `json:"error_tag"`
		RemainingMs int64  `json:"remaining_ms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, domain.ErrorTagCooldownActive, errResp.ErrorTag)
	assert.Equal(t, int64(30000), errResp.RemainingMs)

	w = do(h, http.MethodGet, "/api/v1/minigame/cooldowns?user_id=u1&guild_id=g1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minigame:lagoon")

	w = do(h, http.MethodDelete, "/api/v1/minigame/cooldowns?user_id=u1&guild_id=g1&area_key=lagoon", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodPost, "/api/v1/minigame/actions", body, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_Routes(t *testing.T) {
	h := newTestServer(t, Options{})

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"version", http.MethodGet, "/version", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"unknown area", http.MethodPost, "/api/v1/minigame/actions", `{"user_id":"u1","guild_id":"g1","area_key":"volcano","level":1}`, http.StatusNotFound},
		{"invalid body", http.MethodPost, "/api/v1/minigame/actions", `{"user_id":"u1"}`, http.StatusBadRequest},
		{"deaths", http.MethodGet, "/api/v1/minigame/deaths?user_id=u1&guild_id=g1", "", http.StatusOK},
		{"deaths missing user", http.MethodGet, "/api/v1/minigame/deaths?guild_id=g1", "", http.StatusBadRequest},
		{"tool breaks", http.MethodGet, "/api/v1/telemetry/tool-breaks?limit=5", "", http.StatusOK},
		{"not found", http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, tt.method, tt.target, tt.body, nil)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestServer_MobOverrides(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(h, http.MethodGet, "/api/v1/mobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "slime.green")

	w = do(h, http.MethodPut, "/api/v1/mobs/slime.green", `{"guild_id":"g1","definition":{"base":{"hp":60,"attack":5}}}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved struct {
		Mob struct {
			Name string `json:"name"`
			Base struct {
				HP int `json:"hp"`
			} `json:"base"`
		} `json:"mob"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&saved))
	assert.Equal(t, 60, saved.Mob.Base.HP)
	assert.Equal(t, "Green Slime", saved.Mob.Name)

	w = do(h, http.MethodPut, "/api/v1/mobs/slime.green", `{"guild_id":"g1","definition":{"base":{"hp":0}}}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	assert.Equal(t, http.StatusOK, do(h, http.MethodDelete, "/api/v1/mobs/slime.green?guild_id=g1", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/api/v1/mobs/slime.green?guild_id=g1", "", nil).Code)
}

func TestServer_APIKeyRequired(t *testing.T) {
	h := newTestServer(t, Options{APIKey: "secret"})

	w := do(h, http.MethodGet, "/api/v1/telemetry/tool-breaks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(h, http.MethodGet, "/api/v1/telemetry/tool-breaks", "", map[string]string{HeaderAPIKey: "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, HeaderValueNoSniff, w.Header().Get(HeaderContentType))
}

func TestServer_RateLimited(t *testing.T) {
	h := newTestServer(t, Options{RateLimit: 2, RateLimitWindow: time.Minute})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodGet, "/healthz", "", nil).Code)
}
