package repository

import (
	"context"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/statuseffect"
)

// Minigame defines the interface for action resolution persistence
type Minigame interface {
	// LoadPlayerSnapshot reads the player without locks. cooldownKey selects
	// the cooldown row copied into the snapshot.
	LoadPlayerSnapshot(ctx context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error)
	BeginTx(ctx context.Context) (MinigameTx, error)

	ListDeathLogs(ctx context.Context, userID, guildID string, limit int) ([]domain.DeathLog, error)
	RecordToolBreak(ctx context.Context, ev domain.ToolBreakEvent) error
	PurgeExpiredEffects(ctx context.Context) (int64, error)
}

// MinigameTx is the transaction an action commits through. Every write made
// by one action goes through a single MinigameTx.
type MinigameTx interface {
	Tx
	statuseffect.Store

	// LockPlayer serializes transactions for one player until commit
	LockPlayer(ctx context.Context, userID, guildID string) error
	// LoadPlayerSnapshotForUpdate reads the player with row locks
	LoadPlayerSnapshotForUpdate(ctx context.Context, userID, guildID, cooldownKey string) (*domain.PlayerSnapshot, error)

	UpsertCooldown(ctx context.Context, cd domain.ActionCooldown) error
	// SaveInventoryEntry writes an entry, deleting it when quantity is zero
	SaveInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error
	// AdjustCoins adds delta to the wallet, clamping at zero, and returns the new balance
	AdjustCoins(ctx context.Context, userID, guildID string, delta int64) (int64, error)
	UpdatePlayerState(ctx context.Context, state domain.PlayerState) error
	UpdatePlayerStats(ctx context.Context, stats domain.PlayerStats) error
	InsertDeathLog(ctx context.Context, log domain.DeathLog) error
	InsertActionRun(ctx context.Context, run domain.ActionRun) error
	UpsertPlayerProgress(ctx context.Context, userID, guildID, areaKey string, level int, at time.Time) error
}
