package cooldown

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Service exposes cooldown rows outside of action resolution. Writes during
// an action happen inside the action's own transaction.
type Service interface {
	// List returns the player's active cooldowns
	List(ctx context.Context, userID, guildID string) ([]domain.ActionCooldown, error)

	// Reset manually clears a cooldown (admin/testing)
	Reset(ctx context.Context, userID, guildID, key string) error

	// PurgeInert deletes rows that already lapsed
	PurgeInert(ctx context.Context) (int64, error)
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	seconds := int(math.Ceil(e.Remaining.Seconds()))
	minutes := seconds / SecondsPerMinute
	seconds %= SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown values and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// RemainingOf extracts the remaining duration from a cooldown error
func RemainingOf(err error) (time.Duration, bool) {
	var cd ErrOnCooldown
	if errors.As(err, &cd) {
		return cd.Remaining, true
	}
	return 0, false
}

// Key namespaces an area key for the cooldown table
func Key(areaKey string) string {
	return domain.CooldownKeyPrefixMinigame + areaKey
}

// AreaKey strips the namespace from a cooldown key
func AreaKey(key string) string {
	return strings.TrimPrefix(key, domain.CooldownKeyPrefixMinigame)
}

// Check reports whether until is still in the future at now. An until equal
// to now is already inert.
func Check(until *time.Time, now time.Time) (bool, time.Duration) {
	if until == nil || !until.After(now) {
		return false, 0
	}
	return true, until.Sub(now)
}

// Until returns the next expiry for an action started at now
func Until(now time.Time, d time.Duration) time.Time {
	return now.Add(d)
}

// PlayerLockKey is the in-process lock key for a player in a guild
func PlayerLockKey(userID, guildID string) string {
	return userID + HashSeparator + guildID
}

// HashPlayerLock creates a consistent int64 hash from userID + guildID for advisory locking
func HashPlayerLock(userID, guildID string) int64 {
	h := sha256.Sum256([]byte(PlayerLockKey(userID, guildID)))
	// Use first 8 bytes as int64, masking MSB to ensure positive value and avoid overflow warning
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
