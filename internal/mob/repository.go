// Package mob resolves mob definitions from two tiers: overrides stored in
// the database, then the built-in defaults embedded in the binary.
package mob

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// Store persists mob overrides. FindMobOverride returns the guild row when
// one exists, else the global row, else nil. Writes only touch guild rows.
type Store interface {
	FindMobOverride(ctx context.Context, guildID, key string) (*domain.MobOverrideRecord, error)
	UpsertMobOverride(ctx context.Context, guildID, key string, definition []byte) error
	DeleteMobOverride(ctx context.Context, guildID, key string) (bool, error)
}

// Repository is the single lookup for mob definitions
type Repository interface {
	Get(ctx context.Context, guildID, key string) (*domain.MobDefinition, error)
	DefaultKeys() []string

	// SaveOverride validates definition merged over the default with the
	// same key, stores it for the guild and returns the merged result
	SaveOverride(ctx context.Context, guildID, key string, definition []byte) (*domain.MobDefinition, error)

	// DeleteOverride removes the guild override; domain.ErrMobNotFound when
	// there was none
	DeleteOverride(ctx context.Context, guildID, key string) error
}

type repository struct {
	store    Store
	defaults map[string]domain.MobDefinition
	cache    *expirable.LRU[string, *domain.MobDefinition]
}

// NewRepository creates a repository over the embedded defaults. store may be
// nil, in which case only defaults are served.
func NewRepository(store Store, cacheSize int, ttl time.Duration) (Repository, error) {
	defaults, err := LoadDefaults()
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &repository{
		store:    store,
		defaults: defaults,
		cache:    expirable.NewLRU[string, *domain.MobDefinition](cacheSize, nil, ttl),
	}, nil
}

func cacheKey(guildID, key string) string {
	return guildID + ":" + key
}

// Get returns the stored override merged over the default with the same key.
// An override that fails validation is logged and ignored.
func (r *repository) Get(ctx context.Context, guildID, key string) (*domain.MobDefinition, error) {
	ck := cacheKey(guildID, key)
	if def, ok := r.cache.Get(ck); ok {
		return def, nil
	}

	base, hasDefault := r.defaults[key]

	var override *domain.MobOverrideRecord
	if r.store != nil {
		rec, err := r.store.FindMobOverride(ctx, guildID, key)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgLoadOverrideFailed, key, err)
		}
		override = rec
	}

	var resolved *domain.MobDefinition
	if override != nil {
		def, err := merge(base, key, override.Definition)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgInvalidOverride, "mob", key, "guild_id", guildID, "error", err)
		} else {
			resolved = def
		}
	}
	if resolved == nil && hasDefault {
		def := clone(base)
		resolved = &def
	}
	if resolved == nil {
		return nil, fmt.Errorf(ErrMsgUnknownMob, domain.ErrMobNotFound, key)
	}

	r.cache.Add(ck, resolved)
	return resolved, nil
}

func merge(base domain.MobDefinition, key string, raw []byte) (*domain.MobDefinition, error) {
	def := clone(base)
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidContent, err)
	}
	def.Key = key
	normalize(&def)
	if err := Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// DefaultKeys lists the built-in mob keys in sorted order
func (r *repository) DefaultKeys() []string {
	keys := make([]string, 0, len(r.defaults))
	for k := range r.defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r *repository) SaveOverride(ctx context.Context, guildID, key string, definition []byte) (*domain.MobDefinition, error) {
	if r.store == nil {
		return nil, ErrReadOnly
	}
	if guildID == "" || key == "" {
		return nil, fmt.Errorf(ErrMsgOverrideScope, domain.ErrInvalidInput)
	}
	def, err := merge(r.defaults[key], key, definition)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRejectedOverride, domain.ErrInvalidInput, key, err)
	}
	if err := r.store.UpsertMobOverride(ctx, guildID, key, definition); err != nil {
		return nil, fmt.Errorf(ErrMsgSaveOverrideFailed, key, err)
	}
	r.invalidate(guildID, key)
	logger.FromContext(ctx).Info(LogMsgOverrideSaved, "mob", key, "guild_id", guildID)
	return def, nil
}

func (r *repository) DeleteOverride(ctx context.Context, guildID, key string) error {
	if r.store == nil {
		return ErrReadOnly
	}
	if guildID == "" || key == "" {
		return fmt.Errorf(ErrMsgOverrideScope, domain.ErrInvalidInput)
	}
	found, err := r.store.DeleteMobOverride(ctx, guildID, key)
	if err != nil {
		return fmt.Errorf(ErrMsgDeleteOverrideFailed, key, err)
	}
	if !found {
		return fmt.Errorf(ErrMsgUnknownMob, domain.ErrMobNotFound, key)
	}
	r.invalidate(guildID, key)
	logger.FromContext(ctx).Info(LogMsgOverrideDeleted, "mob", key, "guild_id", guildID)
	return nil
}

// invalidate drops a cached definition after an override changes
func (r *repository) invalidate(guildID, key string) {
	r.cache.Remove(cacheKey(guildID, key))
}
