package cooldown

import "time"

// Config holds cooldown configuration
type Config struct {
	// DevMode bypasses all cooldown checks when true. Cooldown rows are still
	// written so the admin endpoints show realistic data.
	DevMode bool
}

// Effective returns until, or nil when cooldowns are bypassed
func (c Config) Effective(until *time.Time) *time.Time {
	if c.DevMode {
		return nil
	}
	return until
}
