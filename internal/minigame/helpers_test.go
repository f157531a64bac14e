package minigame

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/event"
	"github.com/osse101/ActionEngine_Go/internal/mob"
	"github.com/osse101/ActionEngine_Go/internal/telemetry"
)

const (
	testUser  = "user-1"
	testGuild = "guild-1"

	itemPickaxe = "item-pickaxe"
	itemOre     = "item-ore"
	itemSword   = "item-sword"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	repo  *FakeRepository
	clock *testClock
	sink  *telemetry.RingBuffer
	bus   *event.MemoryBus
	svc   Service

	mu     sync.Mutex
	events []event.Event
}

func (f *fixture) published(t event.Type) []event.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []event.Event
	for _, e := range f.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newFixture(t *testing.T, opts ...func(*Config)) *fixture {
	t.Helper()
	f := &fixture{
		repo:  NewFakeRepository(),
		clock: newTestClock(),
		sink:  telemetry.NewRingBuffer(telemetry.DefaultCapacity),
		bus:   event.NewMemoryBus(),
	}
	f.repo.SetClock(f.clock.Now)
	seedContent(f.repo)

	record := func(_ context.Context, e event.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, e)
		return nil
	}
	for _, typ := range []event.Type{event.ActionResolved, event.ToolBroken, event.PlayerDefeated} {
		f.bus.Subscribe(typ, record)
	}

	mobs, err := mob.NewRepository(f.repo, 0, 0)
	require.NoError(t, err)

	cfg := Config{Now: f.clock.Now, Seed: func() int64 { return 42 }}
	for _, o := range opts {
		o(&cfg)
	}
	catalog := content.NewCatalog(f.repo, content.NewDecoder(), 0, 0)
	f.svc = NewService(f.repo, catalog, mobs, f.repo, f.sink, f.bus, cfg)
	return f
}

func seedContent(repo *FakeRepository) {
	repo.AddItem(domain.ItemRecord{
		ID: itemPickaxe, Key: "pickaxe.iron", Name: "Iron Pickaxe", Tags: []string{domain.TagTool},
		Props: json.RawMessage(`{"tool":{"type":"pickaxe","tier":1},"breakable":{"maxDurability":100,"durabilityPerUse":5}}`),
	})
	repo.AddItem(domain.ItemRecord{
		ID: itemOre, Key: "ore.copper", Name: "Copper Ore", Stackable: true,
	})
	repo.AddItem(domain.ItemRecord{
		ID: itemSword, Key: "sword.wood", Name: "Wooden Sword", Tags: []string{domain.TagWeapon},
		Props: json.RawMessage(`{"damage":50,"tool":{"type":"sword","tier":1}}`),
	})

	repo.AddArea(domain.GameAreaRecord{
		ID: "area-mine", Key: "mine", Name: "Mine", Type: string(domain.AreaTypeMine),
		Config: json.RawMessage(`{"cooldownSeconds":60}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "mine-1", AreaID: "area-mine", Level: 1,
		Requirements: json.RawMessage(`{"tool":{"required":true,"toolType":"pickaxe","minTier":1}}`),
		Rewards:      json.RawMessage(`{"draws":1,"table":[{"type":"item","itemKey":"ore.copper","qty":1,"weight":1}]}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "mine-2", AreaID: "area-mine", Level: 2,
		Requirements: json.RawMessage(`{"tool":{"required":true,"toolType":"pickaxe","minTier":3}}`),
		Rewards:      json.RawMessage(`{"table":[{"type":"coins","amount":5,"weight":1}]}`),
	})

	repo.AddArea(domain.GameAreaRecord{
		ID: "area-lagoon", Key: "lagoon", Name: "Lagoon", Type: string(domain.AreaTypeLagoon),
		Config: json.RawMessage(`{"cooldownSeconds":30}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "lagoon-1", AreaID: "area-lagoon", Level: 1,
		Rewards: json.RawMessage(`{"table":[{"type":"coins","amount":100,"weight":1}]}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "lagoon-2", AreaID: "area-lagoon", Level: 2,
		Rewards: json.RawMessage(`{"table":[{"type":"item","itemKey":"pearl.ghost","weight":1}]}`),
	})

	repo.AddArea(domain.GameAreaRecord{
		ID: "area-arena", Key: "arena", Name: "Arena", Type: string(domain.AreaTypeFight),
		Config: json.RawMessage(`{"cooldownSeconds":30}`),
	})
	repo.AddLevel(domain.GameAreaLevelRecord{
		ID: "arena-1", AreaID: "area-arena", Level: 1,
		Rewards: json.RawMessage(`{"table":[{"type":"coins","amount":10,"weight":1}]}`),
		Mobs:    json.RawMessage(`{"draws":1,"table":[{"mobKey":"slime.green","weight":1}]}`),
	})
}

func durability(v int) *int { return &v }

func givePickaxe(repo *FakeRepository, durabilities ...int) {
	entry := domain.InventoryEntry{UserID: testUser, GuildID: testGuild, ItemID: itemPickaxe, Quantity: len(durabilities)}
	for _, d := range durabilities {
		entry.State.Instances = append(entry.State.Instances, domain.ItemInstance{Durability: durability(d)})
	}
	repo.PutInventory(entry)
}

func equipSword(repo *FakeRepository) {
	repo.PutInventory(domain.InventoryEntry{
		UserID: testUser, GuildID: testGuild, ItemID: itemSword, Quantity: 1,
		State: domain.InventoryState{Instances: []domain.ItemInstance{{}}},
	})
	weapon := itemSword
	repo.Equip(domain.EquipmentSlots{UserID: testUser, GuildID: testGuild, WeaponItemID: &weapon})
}

func mineRequest() ActionRequest {
	return ActionRequest{UserID: testUser, GuildID: testGuild, AreaKey: "mine", Level: 1}
}

func cooldownKey(area string) string {
	return cooldown.Key(area)
}
