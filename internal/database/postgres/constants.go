package postgres

// =============================================================================
// Content Queries
// =============================================================================

// Guild rows sort ahead of global rows; LIMIT 1 picks the override.
const (
	SQLFindArea = `
		SELECT id::text, guild_id, key, name, type, config
		FROM game_areas
		WHERE key = $2 AND (guild_id = $1 OR guild_id IS NULL)
		ORDER BY guild_id NULLS LAST
		LIMIT 1
	`

	SQLFindLevel = `
		SELECT id::text, area_id::text, level, requirements, rewards, mobs, available_from, available_to
		FROM game_area_levels
		WHERE area_id = $1 AND level = $2
	`

	SQLFindItemByKey = `
		SELECT id::text, guild_id, key, name, stackable, tags, props
		FROM items
		WHERE key = $2 AND (guild_id = $1 OR guild_id IS NULL)
		ORDER BY guild_id NULLS LAST
		LIMIT 1
	`

	SQLFindMobOverride = `
		SELECT guild_id, key, definition
		FROM mobs
		WHERE key = $2 AND (guild_id = $1 OR guild_id IS NULL)
		ORDER BY guild_id NULLS LAST
		LIMIT 1
	`

	SQLUpsertMobOverride = `
		INSERT INTO mobs (guild_id, key, definition)
		VALUES ($1, $2, $3)
		ON CONFLICT ((COALESCE(guild_id, '')), key) DO UPDATE
		SET definition = EXCLUDED.definition
	`

	SQLDeleteMobOverride = `DELETE FROM mobs WHERE guild_id = $1 AND key = $2`
)

// =============================================================================
// Player Snapshot Queries
// =============================================================================

const (
	SQLSelectWallet          = `SELECT coins FROM wallets WHERE user_id = $1 AND guild_id = $2`
	SQLSelectWalletForUpdate = SQLSelectWallet + ` FOR UPDATE`

	SQLSelectEquipment = `
		SELECT weapon_item_id::text, armor_item_id::text, cape_item_id::text
		FROM player_equipment
		WHERE user_id = $1 AND guild_id = $2
	`

	SQLSelectInventory = `
		SELECT ie.item_id::text, ie.quantity, ie.state, i.guild_id, i.key, i.name, i.stackable, i.tags, i.props
		FROM inventory_entries ie
		JOIN items i ON i.id = ie.item_id
		WHERE ie.user_id = $1 AND ie.guild_id = $2
		ORDER BY i.key
	`
	SQLSelectInventoryForUpdate = SQLSelectInventory + ` FOR UPDATE OF ie`

	SQLSelectCooldownUntil          = `SELECT until FROM action_cooldowns WHERE user_id = $1 AND guild_id = $2 AND key = $3`
	SQLSelectCooldownUntilForUpdate = SQLSelectCooldownUntil + ` FOR UPDATE`

	SQLSelectPlayerState = `SELECT hp, max_hp FROM player_states WHERE user_id = $1 AND guild_id = $2`

	SQLSelectPlayerStats = `
		SELECT current_win_streak, longest_win_streak, mobs_defeated, damage_dealt,
		       damage_taken, times_defeated, actions_completed
		FROM player_stats
		WHERE user_id = $1 AND guild_id = $2
	`
)

// =============================================================================
// Mutations
// =============================================================================

const (
	SQLUpsertCooldown = `
		INSERT INTO action_cooldowns (user_id, guild_id, key, until)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, guild_id, key) DO UPDATE SET until = EXCLUDED.until
	`

	SQLUpsertInventoryEntry = `
		INSERT INTO inventory_entries (user_id, guild_id, item_id, quantity, state, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, guild_id, item_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, state = EXCLUDED.state, updated_at = NOW()
	`

	SQLAdjustCoins = `
		INSERT INTO wallets (user_id, guild_id, coins)
		VALUES ($1, $2, GREATEST($3::bigint, 0))
		ON CONFLICT (user_id, guild_id) DO UPDATE SET coins = GREATEST(wallets.coins + $3::bigint, 0)
		RETURNING coins
	`

	SQLUpsertPlayerState = `
		INSERT INTO player_states (user_id, guild_id, hp, max_hp)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, guild_id) DO UPDATE SET hp = EXCLUDED.hp, max_hp = EXCLUDED.max_hp
	`

	SQLUpsertPlayerStats = `
		INSERT INTO player_stats (user_id, guild_id, current_win_streak, longest_win_streak, mobs_defeated,
		                          damage_dealt, damage_taken, times_defeated, actions_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, guild_id) DO UPDATE SET
			current_win_streak = EXCLUDED.current_win_streak,
			longest_win_streak = EXCLUDED.longest_win_streak,
			mobs_defeated = EXCLUDED.mobs_defeated,
			damage_dealt = EXCLUDED.damage_dealt,
			damage_taken = EXCLUDED.damage_taken,
			times_defeated = EXCLUDED.times_defeated,
			actions_completed = EXCLUDED.actions_completed
	`

	SQLInsertDeathLog = `
		INSERT INTO death_logs (id, user_id, guild_id, area_key, level, coins_lost, percent_applied,
		                        auto_defeat_no_weapon, fatigue_magnitude, fatigue_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	SQLInsertActionRun = `
		INSERT INTO action_runs (id, user_id, guild_id, area_id, level, outcome, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	SQLUpsertPlayerProgress = `
		INSERT INTO player_progress (user_id, guild_id, area_key, highest_level, completions, last_played_at)
		VALUES ($1, $2, $3, $4, 1, $5)
		ON CONFLICT (user_id, guild_id, area_key) DO UPDATE SET
			highest_level = GREATEST(player_progress.highest_level, EXCLUDED.highest_level),
			completions = player_progress.completions + 1,
			last_played_at = EXCLUDED.last_played_at
	`
)

// =============================================================================
// Status Effects
// =============================================================================

const (
	SQLDeleteExpiredEffects = `
		DELETE FROM status_effects
		WHERE user_id = $1 AND guild_id = $2 AND expires_at IS NOT NULL AND expires_at <= $3
	`

	SQLSelectEffects = `
		SELECT type, magnitude, expires_at, data
		FROM status_effects
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY type
	`

	SQLUpsertEffect = `
		INSERT INTO status_effects (user_id, guild_id, type, magnitude, expires_at, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, guild_id, type) DO UPDATE
		SET magnitude = EXCLUDED.magnitude, expires_at = EXCLUDED.expires_at, data = EXCLUDED.data
	`

	SQLPurgeExpiredEffects = `DELETE FROM status_effects WHERE expires_at IS NOT NULL AND expires_at <= $1`
)

// =============================================================================
// Logs
// =============================================================================

const (
	SQLListDeathLogs = `
		SELECT id::text, area_key, level, coins_lost, percent_applied, auto_defeat_no_weapon,
		       fatigue_magnitude, fatigue_minutes, created_at
		FROM death_logs
		WHERE user_id = $1 AND guild_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	SQLInsertToolBreak = `
		INSERT INTO tool_break_events (occurred_at, user_id, guild_id, tool_key, broken_instance, instances_remaining)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
)

// =============================================================================
// Error Messages
// =============================================================================

const (
	ErrMsgFindArea         = "failed to find area %s: %w"
	ErrMsgFindLevel        = "failed to find level %d of area %s: %w"
	ErrMsgFindItem         = "failed to find item %s: %w"
	ErrMsgFindMob          = "failed to find mob %s: %w"
	ErrMsgUpsertMob        = "failed to save mob %s: %w"
	ErrMsgDeleteMob        = "failed to delete mob %s: %w"
	ErrMsgBeginTx          = "failed to begin transaction: %w"
	ErrMsgLockPlayer       = "failed to lock player %s/%s: %w"
	ErrMsgLoadWallet       = "failed to load wallet: %w"
	ErrMsgLoadEquipment    = "failed to load equipment: %w"
	ErrMsgLoadInventory    = "failed to load inventory: %w"
	ErrMsgDecodeInventory  = "failed to decode inventory state for item %s: %w"
	ErrMsgCorruptInventory = "inventory entry for item %s is corrupt: %w"
	ErrMsgLoadCooldown     = "failed to load cooldown: %w"
	ErrMsgLoadPlayerState  = "failed to load player state: %w"
	ErrMsgLoadPlayerStats  = "failed to load player stats: %w"
	ErrMsgUpsertCooldown   = "failed to upsert cooldown %s: %w"
	ErrMsgSaveInventory    = "failed to save inventory entry %s: %w"
	ErrMsgAdjustCoins      = "failed to adjust coins: %w"
	ErrMsgSavePlayerState  = "failed to save player state: %w"
	ErrMsgSavePlayerStats  = "failed to save player stats: %w"
	ErrMsgInsertDeathLog   = "failed to insert death log: %w"
	ErrMsgInsertActionRun  = "failed to insert action run: %w"
	ErrMsgUpsertProgress   = "failed to upsert player progress: %w"
	ErrMsgDeleteEffects    = "failed to delete expired effects: %w"
	ErrMsgLoadEffects      = "failed to load status effects: %w"
	ErrMsgUpsertEffect     = "failed to upsert status effect %s: %w"
	ErrMsgPurgeEffects     = "failed to purge expired effects: %w"
	ErrMsgListDeathLogs    = "failed to list death logs: %w"
	ErrMsgInsertToolBreak  = "failed to record tool break: %w"
	ErrMsgMarshalInventory = "failed to encode inventory state for item %s: %w"
)
