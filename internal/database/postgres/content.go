package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

// ContentRepository reads raw catalog rows for content.Catalog and
// mob.Repository, and stores guild mob overrides
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// FindArea returns the guild area for key, else the global one, else nil
func (r *ContentRepository) FindArea(ctx context.Context, guildID, key string) (*domain.GameAreaRecord, error) {
	var rec domain.GameAreaRecord
	err := r.db.QueryRow(ctx, SQLFindArea, guildID, key).
		Scan(&rec.ID, &rec.GuildID, &rec.Key, &rec.Name, &rec.Type, &rec.Config)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindArea, key, err)
	}
	return &rec, nil
}

// FindLevel returns one level of an area, or nil
func (r *ContentRepository) FindLevel(ctx context.Context, areaID string, level int) (*domain.GameAreaLevelRecord, error) {
	var rec domain.GameAreaLevelRecord
	err := r.db.QueryRow(ctx, SQLFindLevel, areaID, level).
		Scan(&rec.ID, &rec.AreaID, &rec.Level, &rec.Requirements, &rec.Rewards, &rec.Mobs, &rec.AvailableFrom, &rec.AvailableTo)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindLevel, level, areaID, err)
	}
	return &rec, nil
}

// FindItemByKey returns the guild item for key, else the global one, else nil
func (r *ContentRepository) FindItemByKey(ctx context.Context, guildID, key string) (*domain.ItemRecord, error) {
	var rec domain.ItemRecord
	err := r.db.QueryRow(ctx, SQLFindItemByKey, guildID, key).
		Scan(&rec.ID, &rec.GuildID, &rec.Key, &rec.Name, &rec.Stackable, &rec.Tags, &rec.Props)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindItem, key, err)
	}
	return &rec, nil
}

// FindMobOverride returns the stored override for a mob key, or nil
func (r *ContentRepository) FindMobOverride(ctx context.Context, guildID, key string) (*domain.MobOverrideRecord, error) {
	var rec domain.MobOverrideRecord
	err := r.db.QueryRow(ctx, SQLFindMobOverride, guildID, key).
		Scan(&rec.GuildID, &rec.Key, &rec.Definition)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFindMob, key, err)
	}
	return &rec, nil
}

// UpsertMobOverride stores a guild override for a mob key
func (r *ContentRepository) UpsertMobOverride(ctx context.Context, guildID, key string, definition []byte) error {
	if _, err := r.db.Exec(ctx, SQLUpsertMobOverride, guildID, key, definition); err != nil {
		return fmt.Errorf(ErrMsgUpsertMob, key, err)
	}
	return nil
}

// DeleteMobOverride removes a guild override and reports whether one existed
func (r *ContentRepository) DeleteMobOverride(ctx context.Context, guildID, key string) (bool, error) {
	tag, err := r.db.Exec(ctx, SQLDeleteMobOverride, guildID, key)
	if err != nil {
		return false, fmt.Errorf(ErrMsgDeleteMob, key, err)
	}
	return tag.RowsAffected() > 0, nil
}
