package minigame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/ActionEngine_Go/internal/combat"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/equipment"
	"github.com/osse101/ActionEngine_Go/internal/logger"
	"github.com/osse101/ActionEngine_Go/internal/metrics"
	"github.com/osse101/ActionEngine_Go/internal/mob"
	"github.com/osse101/ActionEngine_Go/internal/repository"
	"github.com/osse101/ActionEngine_Go/internal/requirement"
	"github.com/osse101/ActionEngine_Go/internal/reward"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
	"github.com/osse101/ActionEngine_Go/internal/utils"
	"github.com/osse101/ActionEngine_Go/internal/weighted"
)

// resolution is a committed action plus what has to happen after commit
type resolution struct {
	result    *domain.ActionResult
	toolBreak *domain.ToolBreakEvent
}

func (s *service) ResolveAction(ctx context.Context, req ActionRequest) (result *domain.ActionResult, err error) {
	ctx, span := s.tracer.Start(ctx, SpanResolveAction, trace.WithAttributes(
		attribute.String(AttrUserID, req.UserID),
		attribute.String(AttrGuildID, req.GuildID),
		attribute.String(AttrAreaKey, req.AreaKey),
		attribute.Int(AttrLevel, req.Level),
	))
	start := time.Now()
	defer func() {
		metrics.ActionResolveDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			tag := ErrorTag(err)
			metrics.ActionsRejected.WithLabelValues(tag).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, tag)
			logger.FromContext(ctx).Debug(LogMsgActionRejected, "area", req.AreaKey, "level", req.Level, "tag", tag, "error", err)
		}
		span.End()
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	area, err := s.catalog.Area(ctx, req.GuildID, req.AreaKey)
	if err != nil {
		return nil, classify(err)
	}
	lvl, err := s.catalog.Level(ctx, area, req.Level)
	if err != nil {
		return nil, classify(err)
	}

	// Fail fast on an unlocked read; the same checks run again under lock
	snap, err := s.repo.LoadPlayerSnapshot(ctx, req.UserID, req.GuildID, area.CooldownKey())
	if err != nil {
		return nil, classify(fmt.Errorf(ErrMsgSnapshotFailed, err))
	}
	if _, err := s.check(area, lvl, snap, req.ToolKey, s.now()); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(cooldown.PlayerLockKey(req.UserID, req.GuildID))
	defer unlock()

	out, err := s.commit(ctx, req, area, lvl)
	if err != nil {
		return nil, classify(err)
	}
	span.SetAttributes(attribute.String(AttrOutcome, outcomeOf(out.result)))
	s.afterCommit(ctx, req, area, out)
	return out.result, nil
}

// check resolves the tool and validates the level against a snapshot
func (s *service) check(area *domain.GameArea, lvl *domain.GameAreaLevel, snap *domain.PlayerSnapshot, toolKey string, now time.Time) (*equipment.ToolSelection, error) {
	tool := equipment.ResolveTool(snap, lvl.Requirements.Tool, toolKey)
	verdict := requirement.Validate(requirement.Input{
		Level:         lvl,
		ActionKey:     area.Key,
		Now:           now,
		CooldownUntil: s.cfg.Cooldown.Effective(snap.CooldownUntil),
		Tool:          tool,
	})
	if !verdict.OK() {
		return nil, verdict.Err()
	}
	return tool, nil
}

func (s *service) commit(ctx context.Context, req ActionRequest, area *domain.GameArea, lvl *domain.GameAreaLevel) (*resolution, error) {
	ctx, span := s.tracer.Start(ctx, SpanCommit)
	defer span.End()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.LockPlayer(ctx, req.UserID, req.GuildID); err != nil {
		return nil, fmt.Errorf(ErrMsgLockFailed, err)
	}
	snap, err := tx.LoadPlayerSnapshotForUpdate(ctx, req.UserID, req.GuildID, area.CooldownKey())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgSnapshotFailed, err)
	}
	now := s.now()
	tool, err := s.check(area, lvl, snap, req.ToolKey, now)
	if err != nil {
		return nil, err
	}

	effects, err := s.effects.Active(ctx, tx, req.UserID, req.GuildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEffectsFailed, err)
	}
	mods := statuseffect.ComputeModifiers(effects, now)
	rng := utils.NewRand(s.seed())

	opponents, mobKeys, err := s.drawMobs(ctx, rng, req.GuildID, lvl)
	if err != nil {
		return nil, err
	}

	out := &resolution{result: &domain.ActionResult{
		RunID:      uuid.NewString(),
		AreaKey:    area.Key,
		Level:      lvl.Level,
		Rewards:    []domain.Reward{},
		Mobs:       mobKeys,
		ResolvedAt: now,
	}}
	res := out.result

	gear := equipment.ComputeStats(snap, tool)
	var fight *combat.Result
	if len(opponents) > 0 || area.RequiresWeapon() {
		r := combat.Resolve(rng, combat.Input{
			Gear:           gear,
			HP:             snap.State.HP,
			WinStreak:      snap.Stats.CurrentWinStreak,
			Modifiers:      mods,
			RequiresWeapon: area.RequiresWeapon(),
			Opponents:      opponents,
		})
		fight = &r
		summary := r.Summary
		res.Combat = &summary
	}
	autoDefeat := fight != nil && fight.Summary.Outcome == domain.OutcomeAutoDefeatNoWeapon

	// Entries touched by this action, keyed by item id
	dirty := make(map[string]*domain.InventoryEntry)

	if tool != nil {
		usage, brk, err := useTool(tool, autoDefeat, dirty)
		if err != nil {
			return nil, err
		}
		res.Tool = usage
		if brk != nil {
			brk.Timestamp, brk.UserID, brk.GuildID = now, req.UserID, req.GuildID
			out.toolBreak = brk
		}
	}

	var coinDelta int64
	if !autoDefeat {
		var defeated []*domain.MobDefinition
		if fight != nil {
			defeated = fight.Defeated
		}
		rolled := reward.Resolve(rng, reward.Input{Table: lvl.Rewards, Modifiers: mods, Defeated: defeated})
		granted, err := s.creditRewards(ctx, snap, rolled.Rewards, dirty)
		if err != nil {
			return nil, err
		}
		res.Rewards = granted
		res.RewardModifiers = rolled.Modifiers
		coinDelta += res.CoinsAwarded()
	}

	if fight != nil && fight.PlayerDefeated {
		penalty, err := s.applyPenalty(ctx, tx, req, area, lvl, snap, autoDefeat, now)
		if err != nil {
			return nil, err
		}
		res.Penalty = penalty
		coinDelta -= penalty.CoinsLost
	}

	if coinDelta != 0 {
		if _, err := tx.AdjustCoins(ctx, req.UserID, req.GuildID, coinDelta); err != nil {
			return nil, err
		}
	}

	itemIDs := make([]string, 0, len(dirty))
	for id := range dirty {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)
	for _, id := range itemIDs {
		if err := tx.SaveInventoryEntry(ctx, *dirty[id]); err != nil {
			return nil, err
		}
	}

	until := cooldown.Until(now, area.Cooldown())
	res.CooldownUntil = until
	if err := tx.UpsertCooldown(ctx, domain.ActionCooldown{
		UserID: req.UserID, GuildID: req.GuildID, Key: area.CooldownKey(), Until: until,
	}); err != nil {
		return nil, err
	}

	stats := snap.Stats
	if fight != nil {
		state := snap.State
		if state.MaxHP <= 0 {
			state.MaxHP = domain.DefaultPlayerMaxHP
		}
		state.HP = fight.EndHP
		if fight.PlayerDefeated {
			state.HP = combat.RegenHP(gear.MaxHP)
		}
		if err := tx.UpdatePlayerState(ctx, state); err != nil {
			return nil, err
		}
		stats = combat.ApplyToStats(stats, *fight)
	}
	stats.ActionsCompleted++
	if err := tx.UpdatePlayerStats(ctx, stats); err != nil {
		return nil, err
	}
	if err := tx.UpsertPlayerProgress(ctx, req.UserID, req.GuildID, area.Key, lvl.Level, now); err != nil {
		return nil, err
	}

	blob, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeRunFailed, err)
	}
	if err := tx.InsertActionRun(ctx, domain.ActionRun{
		ID:        res.RunID,
		UserID:    req.UserID,
		GuildID:   req.GuildID,
		AreaID:    area.ID,
		Level:     lvl.Level,
		Outcome:   outcomeOf(res),
		Result:    blob,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return out, nil
}

// drawMobs rolls the level's mob table. Keys with no definition are logged
// and skipped.
func (s *service) drawMobs(ctx context.Context, rng *rand.Rand, guildID string, lvl *domain.GameAreaLevel) ([]combat.Opponent, []string, error) {
	entries := make([]weighted.Entry[string], 0, len(lvl.Mobs.Table))
	for _, e := range lvl.Mobs.Table {
		entries = append(entries, weighted.Entry[string]{Weight: e.Weight, Payload: e.MobKey})
	}
	keys := weighted.Roll(rng, weighted.Table[string]{Draws: lvl.Mobs.DrawCount(), Entries: entries})

	drawn := make([]string, 0, len(keys))
	var opponents []combat.Opponent
	for _, key := range keys {
		def, err := s.mobs.Get(ctx, guildID, key)
		if errors.Is(err, domain.ErrMobNotFound) {
			logger.FromContext(ctx).Warn(LogMsgUnknownMobSkipped, "mob", key, "level_id", lvl.ID)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf(ErrMsgMobFailed, key, err)
		}
		drawn = append(drawn, key)
		opponents = append(opponents, combat.Opponent{Definition: def, Stats: mob.ScaledStats(def, lvl.Level)})
	}
	return opponents, drawn, nil
}

// useTool degrades the selected tool. An auto-defeat never swings it.
func useTool(tool *equipment.ToolSelection, autoDefeat bool, dirty map[string]*domain.InventoryEntry) (*domain.ToolUsage, *domain.ToolBreakEvent, error) {
	usage := &domain.ToolUsage{
		Key:                tool.Key(),
		Source:             tool.Source,
		InstancesRemaining: tool.Entry.Quantity,
	}
	if autoDefeat {
		return usage, nil, nil
	}
	dr, err := equipment.ApplyDurability(tool.Entry)
	if err != nil {
		return nil, nil, fmt.Errorf(ErrMsgDurabilityFailed, err)
	}
	usage.InstancesRemaining = dr.InstancesRemaining
	usage.Broken = dr.Exhausted
	usage.BrokenInstance = dr.BrokenInstance
	usage.DurabilityDelta = dr.Delta
	usage.Remaining = dr.Remaining
	usage.Max = dr.Max
	if dr.Applied {
		dirty[tool.Entry.ItemID] = tool.Entry
	}
	if !dr.BrokenInstance {
		return usage, nil, nil
	}
	return usage, &domain.ToolBreakEvent{
		ToolKey:            usage.Key,
		BrokenInstance:     true,
		InstancesRemaining: dr.InstancesRemaining,
	}, nil
}

// creditRewards applies item rewards to inventory entries and returns the
// rewards actually granted
func (s *service) creditRewards(ctx context.Context, snap *domain.PlayerSnapshot, rewards []domain.Reward, dirty map[string]*domain.InventoryEntry) ([]domain.Reward, error) {
	granted := make([]domain.Reward, 0, len(rewards))
	items := make(map[string]*domain.ItemDefinition)
	for _, r := range rewards {
		if r.Type != domain.RewardKindItem {
			granted = append(granted, r)
			continue
		}
		item, seen := items[r.ItemKey]
		if !seen {
			var err error
			item, err = s.catalog.ItemByKey(ctx, snap.GuildID, r.ItemKey)
			if errors.Is(err, domain.ErrItemNotFound) {
				logger.FromContext(ctx).Warn(LogMsgUnknownItem, "item", r.ItemKey)
				item = nil
			} else if err != nil {
				return nil, fmt.Errorf(ErrMsgItemFailed, r.ItemKey, err)
			}
			items[r.ItemKey] = item
		}
		if item == nil {
			continue
		}

		entry := dirty[item.ID]
		if entry == nil {
			entry = snap.FindEntryByItemID(item.ID)
		}
		if entry == nil {
			entry = &domain.InventoryEntry{UserID: snap.UserID, GuildID: snap.GuildID, ItemID: item.ID}
		}
		if entry.Item == nil {
			entry.Item = item
		}
		if err := equipment.AddUnits(entry, r.Qty); err != nil {
			return nil, fmt.Errorf(ErrMsgCreditFailed, r.ItemKey, err)
		}
		dirty[item.ID] = entry
		granted = append(granted, r)
	}
	return granted, nil
}

// applyPenalty charges a defeated player and applies death fatigue. The
// coin loss is computed on the balance held before this action's rewards.
func (s *service) applyPenalty(
	ctx context.Context,
	tx repository.MinigameTx,
	req ActionRequest,
	area *domain.GameArea,
	lvl *domain.GameAreaLevel,
	snap *domain.PlayerSnapshot,
	autoDefeat bool,
	now time.Time,
) (*domain.DeathPenalty, error) {
	pct := combat.PenaltyPercent(area, lvl.Level)
	lost := combat.CoinsLost(snap.Wallet.Coins, pct)

	fatigue := statuseffect.DeathFatigue(s.cfg.Fatigue, req.UserID, req.GuildID, snap.Stats.CurrentWinStreak, now)
	if err := s.effects.Apply(ctx, tx, fatigue); err != nil {
		return nil, err
	}

	penalty := &domain.DeathPenalty{
		CoinsLost:          lost,
		PercentApplied:     pct,
		AutoDefeatNoWeapon: autoDefeat,
		FatigueMagnitude:   fatigue.Magnitude,
		FatigueMinutes:     int(s.cfg.Fatigue.Duration / time.Minute),
	}
	if err := tx.InsertDeathLog(ctx, domain.DeathLog{
		ID:                 uuid.NewString(),
		UserID:             req.UserID,
		GuildID:            req.GuildID,
		AreaKey:            area.Key,
		Level:              lvl.Level,
		CoinsLost:          lost,
		PercentApplied:     pct,
		AutoDefeatNoWeapon: autoDefeat,
		FatigueMagnitude:   fatigue.Magnitude,
		FatigueMinutes:     penalty.FatigueMinutes,
		CreatedAt:          now,
	}); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgPlayerDefeated,
		"user_id", req.UserID, "guild_id", req.GuildID, "area", area.Key, "coins_lost", lost, "auto_defeat", autoDefeat)
	return penalty, nil
}

func outcomeOf(res *domain.ActionResult) string {
	if res.Combat == nil {
		return RunOutcomeCompleted
	}
	return string(res.Combat.Outcome)
}
