package mob

import (
	"errors"
	"time"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute
)

const (
	ErrMsgDecodeDefaultsFailed = "failed to decode default mobs: %w"
	ErrMsgInvalidDefault       = "default mob %s is invalid: %w"
	ErrMsgLoadOverrideFailed   = "failed to load mob override %s: %w"
	ErrMsgUnknownMob           = "%w: %s"
	ErrMsgOverrideScope        = "%w: mob overrides need a guild and a key"
	ErrMsgRejectedOverride     = "%w: mob override %s: %w"
	ErrMsgSaveOverrideFailed   = "failed to save mob override %s: %w"
	ErrMsgDeleteOverrideFailed = "failed to delete mob override %s: %w"
)

// ErrReadOnly is returned by writes on a repository built without a store
var ErrReadOnly = errors.New("mob repository has no store")

const (
	LogMsgInvalidOverride = "Ignoring invalid mob override"
	LogMsgOverrideSaved   = "Mob override saved"
	LogMsgOverrideDeleted = "Mob override deleted"
)
