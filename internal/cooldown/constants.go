package cooldown

// =============================================================================
// Hash Constants
// =============================================================================

const (
	// HashSeparator is the separator used when combining userID and guildID for advisory lock hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 is the bit mask to ensure advisory lock keys are positive int64 values
	// This masks the MSB to avoid overflow warnings and ensure PostgreSQL compatibility
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	// SQLAdvisoryLock acquires a PostgreSQL advisory transaction lock
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	// SQLSelectActive lists cooldowns that have not lapsed yet
	SQLSelectActive = `
		SELECT key, until
		FROM action_cooldowns
		WHERE user_id = $1 AND guild_id = $2 AND until > $3
		ORDER BY until
	`

	// SQLDeleteCooldown removes a cooldown record for a player key
	SQLDeleteCooldown = `DELETE FROM action_cooldowns WHERE user_id = $1 AND guild_id = $2 AND key = $3`

	// SQLPurgeInert removes rows whose until is in the past
	SQLPurgeInert = `DELETE FROM action_cooldowns WHERE until <= $1`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	// ErrMsgListCooldownsFailed is returned when listing cooldowns fails
	ErrMsgListCooldownsFailed = "failed to list cooldowns: %w"

	// ErrMsgScanCooldownFailed is returned when a cooldown row cannot be scanned
	ErrMsgScanCooldownFailed = "failed to scan cooldown: %w"

	// ErrMsgResetCooldownFailed is returned when manual cooldown reset fails
	ErrMsgResetCooldownFailed = "failed to reset cooldown: %w"

	// ErrMsgPurgeCooldownsFailed is returned when inert rows cannot be removed
	ErrMsgPurgeCooldownsFailed = "failed to purge inert cooldowns: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgCooldownReset is logged when an admin clears a cooldown
	LogMsgCooldownReset = "Cooldown reset"

	// LogMsgInertPurged is logged after inert rows are removed
	LogMsgInertPurged = "Purged inert cooldowns"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "You can use %s again in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "You can use %s again in %ds"
)

// =============================================================================
// Time Conversion Constants
// =============================================================================

const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)
