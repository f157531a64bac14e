package minigame

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/concurrency"
	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/repository"
)

// FakeRepository is a stateful in-memory implementation of the content,
// mob, minigame and cooldown stores for testing. Transactions work on a copy
// of one player's rows and publish it on Commit, so a failed action leaves
// no trace. LockPlayer blocks like an advisory lock until commit or rollback.
type FakeRepository struct {
	mu      sync.Mutex
	decoder *content.Decoder
	locks   *concurrency.LockManager
	now     func() time.Time

	areas  []domain.GameAreaRecord
	levels []domain.GameAreaLevelRecord
	items  []domain.ItemRecord
	mobs   []domain.MobOverrideRecord

	players    map[playerKey]*fakePlayer
	deathLogs  []domain.DeathLog
	actionRuns []domain.ActionRun
	toolBreaks []domain.ToolBreakEvent

	failures map[string]error
}

type playerKey struct {
	userID  string
	guildID string
}

// FakeProgress is one player_progress row
type FakeProgress struct {
	HighestLevel int
	Completions  int
	LastPlayedAt time.Time
}

type fakePlayer struct {
	coins     int64
	equipment domain.EquipmentSlots
	inventory map[string]domain.InventoryEntry
	cooldowns map[string]time.Time
	effects   map[domain.StatusEffectType]domain.StatusEffect
	state     *domain.PlayerState
	stats     domain.PlayerStats
	progress  map[string]FakeProgress
}

func newFakePlayer(userID, guildID string) *fakePlayer {
	return &fakePlayer{
		equipment: domain.EquipmentSlots{UserID: userID, GuildID: guildID},
		inventory: make(map[string]domain.InventoryEntry),
		cooldowns: make(map[string]time.Time),
		effects:   make(map[domain.StatusEffectType]domain.StatusEffect),
		stats:     domain.PlayerStats{UserID: userID, GuildID: guildID},
		progress:  make(map[string]FakeProgress),
	}
}

func (p *fakePlayer) clone() *fakePlayer {
	out := *p
	out.inventory = make(map[string]domain.InventoryEntry, len(p.inventory))
	for k, v := range p.inventory {
		out.inventory[k] = v.Clone()
	}
	out.cooldowns = make(map[string]time.Time, len(p.cooldowns))
	for k, v := range p.cooldowns {
		out.cooldowns[k] = v
	}
	out.effects = make(map[domain.StatusEffectType]domain.StatusEffect, len(p.effects))
	for k, v := range p.effects {
		out.effects[k] = v
	}
	out.progress = make(map[string]FakeProgress, len(p.progress))
	for k, v := range p.progress {
		out.progress[k] = v
	}
	if p.state != nil {
		st := *p.state
		out.state = &st
	}
	return &out
}

// NewFakeRepository creates an empty fake store
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		decoder:  content.NewDecoder(),
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
		players:  make(map[playerKey]*fakePlayer),
		failures: make(map[string]error),
	}
}

// SetClock replaces the clock used by the purge operations
func (f *FakeRepository) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// FailOn makes the named operation return err until cleared with a nil err
func (f *FakeRepository) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

func (f *FakeRepository) failure(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures[op]
}

// player returns the committed rows of a player, creating them. Callers hold f.mu.
func (f *FakeRepository) player(userID, guildID string) *fakePlayer {
	k := playerKey{userID, guildID}
	p, ok := f.players[k]
	if !ok {
		p = newFakePlayer(userID, guildID)
		f.players[k] = p
	}
	return p
}

// =============================================================================
// Seeding
// =============================================================================

// AddArea stores an area row
func (f *FakeRepository) AddArea(rec domain.GameAreaRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.areas = append(f.areas, rec)
}

// AddLevel stores a level row
func (f *FakeRepository) AddLevel(rec domain.GameAreaLevelRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.levels = append(f.levels, rec)
}

// AddItem stores an item row
func (f *FakeRepository) AddItem(rec domain.ItemRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, rec)
}

// AddMobOverride stores a mob override row
func (f *FakeRepository) AddMobOverride(rec domain.MobOverrideRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mobs = append(f.mobs, rec)
}

// SetCoins sets a wallet balance
func (f *FakeRepository) SetCoins(userID, guildID string, coins int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(userID, guildID).coins = coins
}

// PutInventory stores an inventory entry as is, without checking it
func (f *FakeRepository) PutInventory(entry domain.InventoryEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.Item = nil
	f.player(entry.UserID, entry.GuildID).inventory[entry.ItemID] = entry.Clone()
}

// Equip sets the equipment slots of a player
func (f *FakeRepository) Equip(slots domain.EquipmentSlots) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(slots.UserID, slots.GuildID).equipment = slots
}

// PutEffect stores a status effect
func (f *FakeRepository) PutEffect(e domain.StatusEffect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(e.UserID, e.GuildID).effects[e.Type] = e
}

// PutState stores the HP state of a player
func (f *FakeRepository) PutState(st domain.PlayerState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(st.UserID, st.GuildID).state = &st
}

// PutStats stores the counters of a player
func (f *FakeRepository) PutStats(st domain.PlayerStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(st.UserID, st.GuildID).stats = st
}

// PutCooldown stores a cooldown row
func (f *FakeRepository) PutCooldown(cd domain.ActionCooldown) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.player(cd.UserID, cd.GuildID).cooldowns[cd.Key] = cd.Until
}

// =============================================================================
// Inspection
// =============================================================================

// Coins returns the committed wallet balance
func (f *FakeRepository) Coins(userID, guildID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.player(userID, guildID).coins
}

// Inventory returns the committed entry for an item, or nil
func (f *FakeRepository) Inventory(userID, guildID, itemID string) *domain.InventoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.player(userID, guildID).inventory[itemID]
	if !ok {
		return nil
	}
	c := e.Clone()
	return &c
}

// Effects returns the committed status effects of a player
func (f *FakeRepository) Effects(userID, guildID string) []domain.StatusEffect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedEffects(f.player(userID, guildID).effects)
}

// State returns the committed HP state, or nil when never written
func (f *FakeRepository) State(userID, guildID string) *domain.PlayerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.player(userID, guildID).state
	if st == nil {
		return nil
	}
	c := *st
	return &c
}

// Stats returns the committed counters of a player
func (f *FakeRepository) Stats(userID, guildID string) domain.PlayerStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.player(userID, guildID).stats
}

// Progress returns the committed progress row for an area
func (f *FakeRepository) Progress(userID, guildID, areaKey string) (FakeProgress, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.player(userID, guildID).progress[areaKey]
	return p, ok
}

// CooldownUntil returns the committed cooldown for key
func (f *FakeRepository) CooldownUntil(userID, guildID, key string) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.player(userID, guildID).cooldowns[key]
	return t, ok
}

// ActionRuns returns every committed action run
func (f *FakeRepository) ActionRuns() []domain.ActionRun {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ActionRun(nil), f.actionRuns...)
}

// ToolBreakRows returns every persisted tool break
func (f *FakeRepository) ToolBreakRows() []domain.ToolBreakEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.ToolBreakEvent(nil), f.toolBreaks...)
}

// =============================================================================
// content.Store and mob.Store
// =============================================================================

func scopeMatches(rowGuild *string, guildID string) (bool, bool) {
	if rowGuild == nil {
		return true, false
	}
	return *rowGuild == guildID, true
}

func (f *FakeRepository) FindArea(_ context.Context, guildID, key string) (*domain.GameAreaRecord, error) {
	if err := f.failure("FindArea"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var global *domain.GameAreaRecord
	for i := range f.areas {
		rec := f.areas[i]
		if rec.Key != key {
			continue
		}
		if ok, scoped := scopeMatches(rec.GuildID, guildID); ok {
			if scoped {
				return &rec, nil
			}
			global = &rec
		}
	}
	return global, nil
}

func (f *FakeRepository) FindLevel(_ context.Context, areaID string, level int) (*domain.GameAreaLevelRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.levels {
		if f.levels[i].AreaID == areaID && f.levels[i].Level == level {
			rec := f.levels[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *FakeRepository) FindItemByKey(_ context.Context, guildID, key string) (*domain.ItemRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var global *domain.ItemRecord
	for i := range f.items {
		rec := f.items[i]
		if rec.Key != key {
			continue
		}
		if ok, scoped := scopeMatches(rec.GuildID, guildID); ok {
			if scoped {
				return &rec, nil
			}
			global = &rec
		}
	}
	return global, nil
}

func (f *FakeRepository) UpsertMobOverride(_ context.Context, guildID, key string, definition []byte) error {
	if err := f.failure("UpsertMobOverride"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.mobs {
		if g := f.mobs[i].GuildID; g != nil && *g == guildID && f.mobs[i].Key == key {
			f.mobs[i].Definition = append([]byte(nil), definition...)
			return nil
		}
	}
	f.mobs = append(f.mobs, domain.MobOverrideRecord{GuildID: &guildID, Key: key, Definition: append([]byte(nil), definition...)})
	return nil
}

func (f *FakeRepository) DeleteMobOverride(_ context.Context, guildID, key string) (bool, error) {
	if err := f.failure("DeleteMobOverride"); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.mobs {
		if g := f.mobs[i].GuildID; g != nil && *g == guildID && f.mobs[i].Key == key {
			f.mobs = append(f.mobs[:i], f.mobs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRepository) FindMobOverride(_ context.Context, guildID, key string) (*domain.MobOverrideRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var global *domain.MobOverrideRecord
	for i := range f.mobs {
		rec := f.mobs[i]
		if rec.Key != key {
			continue
		}
		if ok, scoped := scopeMatches(rec.GuildID, guildID); ok {
			if scoped {
				return &rec, nil
			}
			global = &rec
		}
	}
	return global, nil
}

// =============================================================================
// repository.Minigame
// =============================================================================

func (f *FakeRepository) LoadPlayerSnapshot(_ context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error) {
	if err := f.failure("LoadPlayerSnapshot"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	p := f.player(userID, guildID).clone()
	f.mu.Unlock()
	return f.snapshot(userID, guildID, cooldownKey, p)
}

func (f *FakeRepository) snapshot(userID, guildID, cooldownKey string, p *fakePlayer) (*domain.PlayerSnapshot, error) {
	snap := &domain.PlayerSnapshot{
		UserID:    userID,
		GuildID:   guildID,
		Wallet:    domain.Wallet{UserID: userID, GuildID: guildID, Coins: p.coins},
		Equipment: p.equipment,
		State: domain.PlayerState{
			UserID: userID, GuildID: guildID, HP: domain.DefaultPlayerMaxHP, MaxHP: domain.DefaultPlayerMaxHP,
		},
		Stats: p.stats,
	}
	if p.state != nil {
		snap.State = *p.state
	}
	if until, ok := p.cooldowns[cooldownKey]; ok {
		snap.CooldownUntil = &until
	}

	ids := make([]string, 0, len(p.inventory))
	for id := range p.inventory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entry := p.inventory[id].Clone()
		item, err := f.itemByID(id)
		if err != nil {
			return nil, err
		}
		entry.Item = item
		if err := entry.CheckInvariant(); err != nil {
			return nil, err
		}
		snap.Inventory = append(snap.Inventory, entry)
	}
	return snap, nil
}

func (f *FakeRepository) itemByID(id string) (*domain.ItemDefinition, error) {
	f.mu.Lock()
	var rec *domain.ItemRecord
	for i := range f.items {
		if f.items[i].ID == id {
			r := f.items[i]
			rec = &r
			break
		}
	}
	f.mu.Unlock()
	if rec == nil {
		return nil, fmt.Errorf("%w: inventory references unknown item %s", domain.ErrIntegrity, id)
	}
	return f.decoder.DecodeItem(rec)
}

func (f *FakeRepository) BeginTx(_ context.Context) (repository.MinigameTx, error) {
	if err := f.failure("BeginTx"); err != nil {
		return nil, err
	}
	return &fakeTx{repo: f}, nil
}

func (f *FakeRepository) ListDeathLogs(_ context.Context, userID, guildID string, limit int) ([]domain.DeathLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DeathLog
	for i := len(f.deathLogs) - 1; i >= 0 && len(out) < limit; i-- {
		l := f.deathLogs[i]
		if l.UserID == userID && l.GuildID == guildID {
			out = append(out, l)
		}
	}
	return out, nil
}

// RecordToolBreak also satisfies telemetry.Repository
func (f *FakeRepository) RecordToolBreak(_ context.Context, ev domain.ToolBreakEvent) error {
	if err := f.failure("RecordToolBreak"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toolBreaks = append(f.toolBreaks, ev)
	return nil
}

func (f *FakeRepository) PurgeExpiredEffects(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	var n int64
	for _, p := range f.players {
		for t, e := range p.effects {
			if e.IsExpired(now) {
				delete(p.effects, t)
				n++
			}
		}
	}
	return n, nil
}

// =============================================================================
// cooldown.Service
// =============================================================================

var _ cooldown.Service = (*FakeRepository)(nil)

func (f *FakeRepository) List(_ context.Context, userID, guildID string) ([]domain.ActionCooldown, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	var out []domain.ActionCooldown
	for key, until := range f.player(userID, guildID).cooldowns {
		if until.After(now) {
			out = append(out, domain.ActionCooldown{UserID: userID, GuildID: guildID, Key: key, Until: until})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Until.Before(out[j].Until) })
	return out, nil
}

func (f *FakeRepository) Reset(_ context.Context, userID, guildID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.player(userID, guildID).cooldowns, key)
	return nil
}

func (f *FakeRepository) PurgeInert(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.now()
	var n int64
	for _, p := range f.players {
		for key, until := range p.cooldowns {
			if !until.After(now) {
				delete(p.cooldowns, key)
				n++
			}
		}
	}
	return n, nil
}

// =============================================================================
// repository.MinigameTx
// =============================================================================

type fakeTx struct {
	repo   *FakeRepository
	key    playerKey
	work   *fakePlayer
	unlock func()
	closed bool

	deathLogs  []domain.DeathLog
	actionRuns []domain.ActionRun
}

// working returns the transaction's copy of a player, locking it on first use
func (t *fakeTx) working(userID, guildID string) *fakePlayer {
	k := playerKey{userID, guildID}
	if t.work == nil {
		t.unlock = t.repo.locks.Lock(cooldown.PlayerLockKey(userID, guildID))
		t.repo.mu.Lock()
		t.work = t.repo.player(userID, guildID).clone()
		t.repo.mu.Unlock()
		t.key = k
	}
	return t.work
}

func (t *fakeTx) op(name string) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	return t.repo.failure(name)
}

func (t *fakeTx) release() {
	t.closed = true
	if t.unlock != nil {
		t.unlock()
	}
}

func (t *fakeTx) Commit(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	if err := t.repo.failure("Commit"); err != nil {
		t.release()
		return err
	}
	t.repo.mu.Lock()
	if t.work != nil {
		t.repo.players[t.key] = t.work
	}
	t.repo.deathLogs = append(t.repo.deathLogs, t.deathLogs...)
	t.repo.actionRuns = append(t.repo.actionRuns, t.actionRuns...)
	t.repo.mu.Unlock()
	t.release()
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *fakeTx) LockPlayer(_ context.Context, userID, guildID string) error {
	if err := t.op("LockPlayer"); err != nil {
		return err
	}
	t.working(userID, guildID)
	return nil
}

func (t *fakeTx) LoadPlayerSnapshotForUpdate(_ context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error) {
	if err := t.op("LoadPlayerSnapshotForUpdate"); err != nil {
		return nil, err
	}
	return t.repo.snapshot(userID, guildID, cooldownKey, t.working(userID, guildID).clone())
}

func (t *fakeTx) UpsertCooldown(_ context.Context, cd domain.ActionCooldown) error {
	if err := t.op("UpsertCooldown"); err != nil {
		return err
	}
	t.working(cd.UserID, cd.GuildID).cooldowns[cd.Key] = cd.Until
	return nil
}

func (t *fakeTx) SaveInventoryEntry(_ context.Context, entry domain.InventoryEntry) error {
	if err := t.op("SaveInventoryEntry"); err != nil {
		return err
	}
	if err := entry.CheckInvariant(); err != nil {
		return err
	}
	p := t.working(entry.UserID, entry.GuildID)
	entry.Item = nil
	p.inventory[entry.ItemID] = entry.Clone()
	return nil
}

func (t *fakeTx) AdjustCoins(_ context.Context, userID, guildID string, delta int64) (int64, error) {
	if err := t.op("AdjustCoins"); err != nil {
		return 0, err
	}
	p := t.working(userID, guildID)
	p.coins = max(0, p.coins+delta)
	return p.coins, nil
}

func (t *fakeTx) UpdatePlayerState(_ context.Context, st domain.PlayerState) error {
	if err := t.op("UpdatePlayerState"); err != nil {
		return err
	}
	t.working(st.UserID, st.GuildID).state = &st
	return nil
}

func (t *fakeTx) UpdatePlayerStats(_ context.Context, st domain.PlayerStats) error {
	if err := t.op("UpdatePlayerStats"); err != nil {
		return err
	}
	t.working(st.UserID, st.GuildID).stats = st
	return nil
}

func (t *fakeTx) InsertDeathLog(_ context.Context, l domain.DeathLog) error {
	if err := t.op("InsertDeathLog"); err != nil {
		return err
	}
	t.deathLogs = append(t.deathLogs, l)
	return nil
}

func (t *fakeTx) InsertActionRun(_ context.Context, run domain.ActionRun) error {
	if err := t.op("InsertActionRun"); err != nil {
		return err
	}
	t.actionRuns = append(t.actionRuns, run)
	return nil
}

func (t *fakeTx) UpsertPlayerProgress(_ context.Context, userID, guildID, areaKey string, level int, at time.Time) error {
	if err := t.op("UpsertPlayerProgress"); err != nil {
		return err
	}
	p := t.working(userID, guildID)
	prog := p.progress[areaKey]
	prog.HighestLevel = max(prog.HighestLevel, level)
	prog.Completions++
	prog.LastPlayedAt = at
	p.progress[areaKey] = prog
	return nil
}

func (t *fakeTx) DeleteExpiredStatusEffects(_ context.Context, userID, guildID string, now time.Time) (int64, error) {
	if err := t.op("DeleteExpiredStatusEffects"); err != nil {
		return 0, err
	}
	p := t.working(userID, guildID)
	var n int64
	for typ, e := range p.effects {
		if e.IsExpired(now) {
			delete(p.effects, typ)
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) GetStatusEffects(_ context.Context, userID, guildID string) ([]domain.StatusEffect, error) {
	if err := t.op("GetStatusEffects"); err != nil {
		return nil, err
	}
	return sortedEffects(t.working(userID, guildID).effects), nil
}

func (t *fakeTx) UpsertStatusEffect(_ context.Context, e domain.StatusEffect) error {
	if err := t.op("UpsertStatusEffect"); err != nil {
		return err
	}
	t.working(e.UserID, e.GuildID).effects[e.Type] = e
	return nil
}

func sortedEffects(m map[domain.StatusEffectType]domain.StatusEffect) []domain.StatusEffect {
	out := make([]domain.StatusEffect, 0, len(m))
	for _, e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
