package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// loadSnapshot assembles a PlayerSnapshot. Missing wallet, state and stats
// rows read as their defaults; they are created on first write.
func loadSnapshot(ctx context.Context, db dbtx, decoder *content.Decoder, userID, guildID, cooldownKey string, forUpdate bool) (*domain.PlayerSnapshot, error) {
	snap := &domain.PlayerSnapshot{
		UserID:    userID,
		GuildID:   guildID,
		Wallet:    domain.Wallet{UserID: userID, GuildID: guildID},
		Equipment: domain.EquipmentSlots{UserID: userID, GuildID: guildID},
		State: domain.PlayerState{
			UserID:  userID,
			GuildID: guildID,
			HP:      domain.DefaultPlayerMaxHP,
			MaxHP:   domain.DefaultPlayerMaxHP,
		},
		Stats: domain.PlayerStats{UserID: userID, GuildID: guildID},
	}

	walletSQL, inventorySQL, cooldownSQL := SQLSelectWallet, SQLSelectInventory, SQLSelectCooldownUntil
	if forUpdate {
		walletSQL, inventorySQL, cooldownSQL = SQLSelectWalletForUpdate, SQLSelectInventoryForUpdate, SQLSelectCooldownUntilForUpdate
	}

	if err := db.QueryRow(ctx, walletSQL, userID, guildID).Scan(&snap.Wallet.Coins); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrMsgLoadWallet, err)
	}

	eq := &snap.Equipment
	if err := db.QueryRow(ctx, SQLSelectEquipment, userID, guildID).
		Scan(&eq.WeaponItemID, &eq.ArmorItemID, &eq.CapeItemID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrMsgLoadEquipment, err)
	}

	inventory, err := loadInventory(ctx, db, decoder, userID, guildID, inventorySQL)
	if err != nil {
		return nil, err
	}
	snap.Inventory = inventory

	if cooldownKey != "" {
		var until time.Time
		err := db.QueryRow(ctx, cooldownSQL, userID, guildID, cooldownKey).Scan(&until)
		switch {
		case err == nil:
			snap.CooldownUntil = &until
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf(ErrMsgLoadCooldown, err)
		}
	}

	st := &snap.State
	if err := db.QueryRow(ctx, SQLSelectPlayerState, userID, guildID).Scan(&st.HP, &st.MaxHP); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrMsgLoadPlayerState, err)
	}

	ps := &snap.Stats
	if err := db.QueryRow(ctx, SQLSelectPlayerStats, userID, guildID).Scan(&ps.CurrentWinStreak, &ps.LongestWinStreak,
		&ps.MobsDefeated, &ps.DamageDealt, &ps.DamageTaken, &ps.TimesDefeated, &ps.ActionsCompleted); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf(ErrMsgLoadPlayerStats, err)
	}

	return snap, nil
}

func loadInventory(ctx context.Context, db dbtx, decoder *content.Decoder, userID, guildID, query string) ([]domain.InventoryEntry, error) {
	rows, err := db.Query(ctx, query, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadInventory, err)
	}
	defer rows.Close()

	var out []domain.InventoryEntry
	for rows.Next() {
		var (
			entry = domain.InventoryEntry{UserID: userID, GuildID: guildID}
			state []byte
			rec   domain.ItemRecord
		)
		if err := rows.Scan(&entry.ItemID, &entry.Quantity, &state, &rec.GuildID, &rec.Key, &rec.Name,
			&rec.Stackable, &rec.Tags, &rec.Props); err != nil {
			return nil, fmt.Errorf(ErrMsgLoadInventory, err)
		}
		if len(state) > 0 {
			if err := json.Unmarshal(state, &entry.State); err != nil {
				return nil, fmt.Errorf(ErrMsgDecodeInventory, rec.Key, errors.Join(domain.ErrIntegrity, err))
			}
		}
		rec.ID = entry.ItemID
		item, err := decoder.DecodeItem(&rec)
		if err != nil {
			return nil, err
		}
		entry.Item = item
		if err := entry.CheckInvariant(); err != nil {
			return nil, fmt.Errorf(ErrMsgCorruptInventory, rec.Key, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadInventory, err)
	}
	return out, nil
}
