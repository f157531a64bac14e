package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ActionEngine_Go/internal/content"
	"github.com/osse101/ActionEngine_Go/internal/cooldown"
	"github.com/osse101/ActionEngine_Go/internal/database/postgres"
)

// Repositories holds the Postgres-backed stores used by the engine
type Repositories struct {
	Content   *postgres.ContentRepository
	Minigame  *postgres.MinigameRepository
	Cooldowns cooldown.Service
}

// InitializeRepositories creates all repository implementations. The
// minigame store shares the content decoder so stored blobs are validated
// against the same schemas as catalog reads.
func InitializeRepositories(dbPool *pgxpool.Pool, decoder *content.Decoder) *Repositories {
	return &Repositories{
		Content:   postgres.NewContentRepository(dbPool),
		Minigame:  postgres.NewMinigameRepository(dbPool, decoder),
		Cooldowns: cooldown.NewPostgresService(dbPool),
	}
}
