// Package content serves areas, levels and items. Rows are read from the
// store as raw JSON, validated against embedded schemas, decoded into typed
// structures and cached.
package content

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// Store reads raw content rows. Lookups by key return the guild row when one
// exists, else the global row, else nil.
type Store interface {
	FindArea(ctx context.Context, guildID, key string) (*domain.GameAreaRecord, error)
	FindLevel(ctx context.Context, areaID string, level int) (*domain.GameAreaLevelRecord, error)
	FindItemByKey(ctx context.Context, guildID, key string) (*domain.ItemRecord, error)
}

// Catalog is the typed, cached view over content
type Catalog interface {
	Area(ctx context.Context, guildID, key string) (*domain.GameArea, error)
	Level(ctx context.Context, area *domain.GameArea, level int) (*domain.GameAreaLevel, error)
	ItemByKey(ctx context.Context, guildID, key string) (*domain.ItemDefinition, error)
	Purge()
}

type catalog struct {
	store   Store
	decoder *Decoder
	areas   *expirable.LRU[string, *domain.GameArea]
	levels  *expirable.LRU[string, *domain.GameAreaLevel]
	items   *expirable.LRU[string, *domain.ItemDefinition]
}

// NewCatalog creates a catalog. Non-positive size or ttl fall back to defaults.
func NewCatalog(store Store, decoder *Decoder, size int, ttl time.Duration) Catalog {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &catalog{
		store:   store,
		decoder: decoder,
		areas:   expirable.NewLRU[string, *domain.GameArea](size, nil, ttl),
		levels:  expirable.NewLRU[string, *domain.GameAreaLevel](size, nil, ttl),
		items:   expirable.NewLRU[string, *domain.ItemDefinition](size, nil, ttl),
	}
}

func (c *catalog) Area(ctx context.Context, guildID, key string) (*domain.GameArea, error) {
	ck := guildID + ":" + key
	if area, ok := c.areas.Get(ck); ok {
		return area, nil
	}

	rec, err := c.store.FindArea(ctx, guildID, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAreaFailed, key, err)
	}
	if rec == nil {
		return nil, fmt.Errorf(ErrMsgAreaNotFoundFmt, domain.ErrAreaNotFound, key)
	}

	area, err := c.decoder.DecodeArea(rec)
	if err != nil {
		return nil, err
	}
	c.areas.Add(ck, area)
	return area, nil
}

func (c *catalog) Level(ctx context.Context, area *domain.GameArea, level int) (*domain.GameAreaLevel, error) {
	ck := area.ID + ":" + strconv.Itoa(level)
	if lvl, ok := c.levels.Get(ck); ok {
		return lvl, nil
	}

	rec, err := c.store.FindLevel(ctx, area.ID, level)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadLevelFailed, level, area.Key, err)
	}
	if rec == nil {
		return nil, fmt.Errorf(ErrMsgLevelNotFoundFmt, domain.ErrLevelNotFound, area.Key, level)
	}

	lvl, err := c.decoder.DecodeLevel(rec)
	if err != nil {
		return nil, err
	}
	c.levels.Add(ck, lvl)
	return lvl, nil
}

func (c *catalog) ItemByKey(ctx context.Context, guildID, key string) (*domain.ItemDefinition, error) {
	ck := guildID + ":" + key
	if item, ok := c.items.Get(ck); ok {
		return item, nil
	}

	rec, err := c.store.FindItemByKey(ctx, guildID, key)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadItemFailed, key, err)
	}
	if rec == nil {
		return nil, fmt.Errorf(ErrMsgItemNotFoundFmt, domain.ErrItemNotFound, key)
	}

	item, err := c.decoder.DecodeItem(rec)
	if err != nil {
		return nil, err
	}
	c.items.Add(ck, item)
	return item, nil
}

// Purge empties every cache, e.g. after content is edited
func (c *catalog) Purge() {
	c.areas.Purge()
	c.levels.Purge()
	c.items.Purge()
}
