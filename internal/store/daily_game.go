package store

import (
	"context"

	"github.com/phrazzld/cunningbot/internal/domain"
)

// DailyGameStore defines the interface for daily game reminders, keyed by
// guild and game name.
type DailyGameStore interface {
	// Save creates or replaces game in guildID. Game names are unique per
	// guild; saving a name that belongs to another channel returns
	// ErrGameNameTaken. Invalid games return ErrInvalidEntity.
	Save(ctx context.Context, guildID string, game *domain.DailyGame) error

	// Get returns the named game. Returns ErrDailyGameNotFound if it does not exist.
	Get(ctx context.Context, guildID, name string) (*domain.DailyGame, error)

	// Delete removes the named game. Returns ErrDailyGameNotFound if it does not exist.
	Delete(ctx context.Context, guildID, name string) error

	// List returns the guild's games sorted by name.
	List(ctx context.Context, guildID string) ([]*domain.DailyGame, error)

	// ListAll returns every guild's games keyed by guild ID.
	ListAll(ctx context.Context) (map[string][]*domain.DailyGame, error)
}
