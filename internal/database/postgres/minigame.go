package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/repository"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// MinigameRepository implements repository.Minigame for PostgreSQL
type MinigameRepository struct {
	db      *pgxpool.Pool
	decoder *content.Decoder
	now     func() time.Time
}

// NewMinigameRepository creates a new MinigameRepository. The decoder
// validates item props joined into inventory rows.
func NewMinigameRepository(db *pgxpool.Pool, decoder *content.Decoder) *MinigameRepository {
	return &MinigameRepository{db: db, decoder: decoder, now: time.Now}
}

// LoadPlayerSnapshot reads the player without locks
func (r *MinigameRepository) LoadPlayerSnapshot(ctx context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error) {
	return loadSnapshot(ctx, r.db, r.decoder, userID, guildID, cooldownKey, false)
}

// BeginTx starts the transaction an action commits through
func (r *MinigameRepository) BeginTx(ctx context.Context) (repository.MinigameTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTx, err)
	}
	return &minigameTx{tx: tx, decoder: r.decoder}, nil
}

// ListDeathLogs returns the newest death logs for a player
func (r *MinigameRepository) ListDeathLogs(ctx context.Context, userID, guildID string, limit int) ([]domain.DeathLog, error) {
	rows, err := r.db.Query(ctx, SQLListDeathLogs, userID, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListDeathLogs, err)
	}
	defer rows.Close()

	var out []domain.DeathLog
	for rows.Next() {
		l := domain.DeathLog{UserID: userID, GuildID: guildID}
		if err := rows.Scan(&l.ID, &l.AreaKey, &l.Level, &l.CoinsLost, &l.PercentApplied,
			&l.AutoDefeatNoWeapon, &l.FatigueMagnitude, &l.FatigueMinutes, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgListDeathLogs, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListDeathLogs, err)
	}
	return out, nil
}

// RecordToolBreak appends a tool break event
func (r *MinigameRepository) RecordToolBreak(ctx context.Context, ev domain.ToolBreakEvent) error {
	_, err := r.db.Exec(ctx, SQLInsertToolBreak, ev.Timestamp, ev.UserID, ev.GuildID, ev.ToolKey, ev.BrokenInstance, ev.InstancesRemaining)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertToolBreak, err)
	}
	return nil
}

// PurgeExpiredEffects deletes every lapsed status effect
func (r *MinigameRepository) PurgeExpiredEffects(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLPurgeExpiredEffects, r.now())
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPurgeEffects, err)
	}
	return tag.RowsAffected(), nil
}

// minigameTx implements repository.MinigameTx over a pgx transaction
type minigameTx struct {
	tx      pgx.Tx
	decoder *content.Decoder
}

func (t *minigameTx) Commit(ctx context.Context) error {
	return translateTxErr(t.tx.Commit(ctx))
}

func (t *minigameTx) Rollback(ctx context.Context) error {
	return translateTxErr(t.tx.Rollback(ctx))
}

func translateTxErr(err error) error {
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *minigameTx) LockPlayer(ctx context.Context, userID, guildID string) error {
	if _, err := t.tx.Exec(ctx, cooldown.SQLAdvisoryLock, cooldown.HashPlayerLock(userID, guildID)); err != nil {
		return fmt.Errorf(ErrMsgLockPlayer, userID, guildID, err)
	}
	return nil
}

func (t *minigameTx) LoadPlayerSnapshotForUpdate(ctx context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error) {
	return loadSnapshot(ctx, t.tx, t.decoder, userID, guildID, cooldownKey, true)
}

func (t *minigameTx) UpsertCooldown(ctx context.Context, cd domain.ActionCooldown) error {
	if _, err := t.tx.Exec(ctx, SQLUpsertCooldown, cd.UserID, cd.GuildID, cd.Key, cd.Until); err != nil {
		return fmt.Errorf(ErrMsgUpsertCooldown, cd.Key, err)
	}
	return nil
}

// SaveInventoryEntry re-checks the instance invariant before writing.
// An exhausted entry is kept with quantity 0 and no instances.
func (t *minigameTx) SaveInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error {
	if err := entry.CheckInvariant(); err != nil {
		return err
	}
	state, err := json.Marshal(entry.State)
	if err != nil {
		return fmt.Errorf(ErrMsgMarshalInventory, entry.Key(), err)
	}
	if _, err := t.tx.Exec(ctx, SQLUpsertInventoryEntry, entry.UserID, entry.GuildID, entry.ItemID, entry.Quantity, state); err != nil {
		return fmt.Errorf(ErrMsgSaveInventory, entry.Key(), err)
	}
	return nil
}

func (t *minigameTx) AdjustCoins(ctx context.Context, userID, guildID string, delta int64) (int64, error) {
	var coins int64
	if err := t.tx.QueryRow(ctx, SQLAdjustCoins, userID, guildID, delta).Scan(&coins); err != nil {
		return 0, fmt.Errorf(ErrMsgAdjustCoins, err)
	}
	return coins, nil
}

func (t *minigameTx) UpdatePlayerState(ctx context.Context, s domain.PlayerState) error {
	if _, err := t.tx.Exec(ctx, SQLUpsertPlayerState, s.UserID, s.GuildID, s.HP, s.MaxHP); err != nil {
		return fmt.Errorf(ErrMsgSavePlayerState, err)
	}
	return nil
}

func (t *minigameTx) UpdatePlayerStats(ctx context.Context, s domain.PlayerStats) error {
	_, err := t.tx.Exec(ctx, SQLUpsertPlayerStats, s.UserID, s.GuildID, s.CurrentWinStreak, s.LongestWinStreak,
		s.MobsDefeated, s.DamageDealt, s.DamageTaken, s.TimesDefeated, s.ActionsCompleted)
	if err != nil {
		return fmt.Errorf(ErrMsgSavePlayerStats, err)
	}
	return nil
}

func (t *minigameTx) InsertDeathLog(ctx context.Context, l domain.DeathLog) error {
	_, err := t.tx.Exec(ctx, SQLInsertDeathLog, l.ID, l.UserID, l.GuildID, l.AreaKey, l.Level, l.CoinsLost,
		l.PercentApplied, l.AutoDefeatNoWeapon, l.FatigueMagnitude, l.FatigueMinutes, l.CreatedAt)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertDeathLog, err)
	}
	return nil
}

func (t *minigameTx) InsertActionRun(ctx context.Context, run domain.ActionRun) error {
	_, err := t.tx.Exec(ctx, SQLInsertActionRun, run.ID, run.UserID, run.GuildID, run.AreaID, run.Level,
		run.Outcome, run.Result, run.CreatedAt)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertActionRun, err)
	}
	return nil
}

func (t *minigameTx) UpsertPlayerProgress(ctx context.Context, userID, guildID, areaKey string, level int, at time.Time) error {
	if _, err := t.tx.Exec(ctx, SQLUpsertPlayerProgress, userID, guildID, areaKey, level, at); err != nil {
		return fmt.Errorf(ErrMsgUpsertProgress, err)
	}
	return nil
}

func (t *minigameTx) DeleteExpiredStatusEffects(ctx context.Context, userID, guildID string, now time.Time) (int64, error) {
	tag, err := t.tx.Exec(ctx, SQLDeleteExpiredEffects, userID, guildID, now)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDeleteEffects, err)
	}
	return tag.RowsAffected(), nil
}

func (t *minigameTx) GetStatusEffects(ctx context.Context, userID, guildID string) ([]domain.StatusEffect, error) {
	rows, err := t.tx.Query(ctx, SQLSelectEffects, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadEffects, err)
	}
	defer rows.Close()

	var out []domain.StatusEffect
	for rows.Next() {
		e := domain.StatusEffect{UserID: userID, GuildID: guildID}
		if err := rows.Scan(&e.Type, &e.Magnitude, &e.ExpiresAt, &e.Data); err != nil {
			return nil, fmt.Errorf(ErrMsgLoadEffects, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadEffects, err)
	}
	return out, nil
}

func (t *minigameTx) UpsertStatusEffect(ctx context.Context, e domain.StatusEffect) error {
	var data []byte
	if len(e.Data) > 0 {
		data = []byte(e.Data)
	}
	if _, err := t.tx.Exec(ctx, SQLUpsertEffect, e.UserID, e.GuildID, string(e.Type), e.Magnitude, e.ExpiresAt, data); err != nil {
		return fmt.Errorf(ErrMsgUpsertEffect, e.Type, err)
	}
	return nil
}
