package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/ActionEngine_Go/internal/domain"
	"github.com/osse101/ActionEngine_Go/internal/logger"
)

// Querier is the subset of pgxpool.Pool used by the postgres backend
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// postgresBackend implements Service using PostgreSQL
type postgresBackend struct {
	db  Querier
	now func() time.Time
}

// NewPostgresService creates a new cooldown service with Postgres backend
func NewPostgresService(db Querier) Service {
	return &postgresBackend{db: db, now: time.Now}
}

// List returns the player's active cooldowns (unlocked read)
func (b *postgresBackend) List(ctx context.Context, userID, guildID string) ([]domain.ActionCooldown, error) {
	rows, err := b.db.Query(ctx, SQLSelectActive, userID, guildID, b.now())
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCooldownsFailed, err)
	}
	defer rows.Close()

	var out []domain.ActionCooldown
	for rows.Next() {
		cd := domain.ActionCooldown{UserID: userID, GuildID: guildID}
		if err := rows.Scan(&cd.Key, &cd.Until); err != nil {
			return nil, fmt.Errorf(ErrMsgScanCooldownFailed, err)
		}
		out = append(out, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListCooldownsFailed, err)
	}
	return out, nil
}

// Reset manually clears a cooldown
func (b *postgresBackend) Reset(ctx context.Context, userID, guildID, key string) error {
	if _, err := b.db.Exec(ctx, SQLDeleteCooldown, userID, guildID, key); err != nil {
		return fmt.Errorf(ErrMsgResetCooldownFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgCooldownReset, "user_id", userID, "guild_id", guildID, "key", key)
	return nil
}

// PurgeInert deletes lapsed rows
func (b *postgresBackend) PurgeInert(ctx context.Context) (int64, error) {
	tag, err := b.db.Exec(ctx, SQLPurgeInert, b.now())
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPurgeCooldownsFailed, err)
	}
	if n := tag.RowsAffected(); n > 0 {
		logger.FromContext(ctx).Debug(LogMsgInertPurged, "count", n)
	}
	return tag.RowsAffected(), nil
}
