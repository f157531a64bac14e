package content

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

type fakeStore struct {
	areas  map[string]*domain.GameAreaRecord // guildID+":"+key, "" guild for global
	levels map[string]*domain.GameAreaLevelRecord
	items  map[string]*domain.ItemRecord
	calls  int
	err    error
}

func (f *fakeStore) FindArea(_ context.Context, guildID, key string) (*domain.GameAreaRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if rec, ok := f.areas[guildID+":"+key]; ok {
		return rec, nil
	}
	return f.areas[":"+key], nil
}

func (f *fakeStore) FindLevel(_ context.Context, areaID string, level int) (*domain.GameAreaLevelRecord, error) {
	f.calls++
	for _, rec := range f.levels {
		if rec.AreaID == areaID && rec.Level == level {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindItemByKey(_ context.Context, guildID, key string) (*domain.ItemRecord, error) {
	f.calls++
	if rec, ok := f.items[guildID+":"+key]; ok {
		return rec, nil
	}
	return f.items[":"+key], nil
}

func newFakeStore() *fakeStore {
	g1 := "g1"
	return &fakeStore{
		areas: map[string]*domain.GameAreaRecord{
			":mine":   {ID: "global-mine", Key: "mine", Name: "Mine", Type: "MINE", Config: json.RawMessage(`{"cooldownSeconds": 30}`)},
			"g1:mine": {ID: "guild-mine", GuildID: &g1, Key: "mine", Name: "Guild Mine", Type: "MINE", Config: json.RawMessage(`{"cooldownSeconds": 10}`)},
			":broken": {ID: "broken", Key: "broken", Type: "MINE", Config: json.RawMessage(`{"cooldownSeconds": "soon"}`)},
		},
		levels: map[string]*domain.GameAreaLevelRecord{
			"l1": {ID: "l1", AreaID: "global-mine", Level: 1, Rewards: json.RawMessage(`{"table": [{"type": "coins", "amount": 5, "weight": 1}]}`)},
		},
		items: map[string]*domain.ItemRecord{
			":ore.copper": {ID: "i1", Key: "ore.copper", Stackable: true},
		},
	}
}

func TestCatalog_AreaGuildPrecedence(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog(newFakeStore(), NewDecoder(), 0, 0)

	guild, err := cat.Area(ctx, "g1", "mine")
	require.NoError(t, err)
	assert.Equal(t, "guild-mine", guild.ID)
	assert.Equal(t, 10, guild.Config.CooldownSeconds)

	global, err := cat.Area(ctx, "g2", "mine")
	require.NoError(t, err)
	assert.Equal(t, "global-mine", global.ID)
}

func TestCatalog_NotFound(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog(newFakeStore(), NewDecoder(), 0, 0)

	_, err := cat.Area(ctx, "g1", "volcano")
	assert.ErrorIs(t, err, domain.ErrAreaNotFound)

	area, err := cat.Area(ctx, "g2", "mine")
	require.NoError(t, err)
	_, err = cat.Level(ctx, area, 9)
	assert.ErrorIs(t, err, domain.ErrLevelNotFound)

	_, err = cat.ItemByKey(ctx, "g1", "ore.mythril")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCatalog_InvalidContent(t *testing.T) {
	cat := NewCatalog(newFakeStore(), NewDecoder(), 0, 0)

	_, err := cat.Area(context.Background(), "g1", "broken")
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}

func TestCatalog_Caches(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cat := NewCatalog(store, NewDecoder(), 16, 0)

	area, err := cat.Area(ctx, "g2", "mine")
	require.NoError(t, err)
	_, err = cat.Level(ctx, area, 1)
	require.NoError(t, err)
	_, err = cat.ItemByKey(ctx, "g2", "ore.copper")
	require.NoError(t, err)
	assert.Equal(t, 3, store.calls)

	for i := 0; i < 3; i++ {
		_, _ = cat.Area(ctx, "g2", "mine")
		_, _ = cat.Level(ctx, area, 1)
		_, _ = cat.ItemByKey(ctx, "g2", "ore.copper")
	}
	assert.Equal(t, 3, store.calls)

	cat.Purge()
	_, err = cat.Area(ctx, "g2", "mine")
	require.NoError(t, err)
	assert.Equal(t, 4, store.calls)
}

func TestCatalog_StoreError(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	cat := NewCatalog(store, NewDecoder(), 0, 0)

	_, err := cat.Area(context.Background(), "g1", "mine")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, domain.ErrAreaNotFound)
}
