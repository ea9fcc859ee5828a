package store

import (
	"context"

	"github.com/phrazzld/cunningbot/internal/domain"
)

// PersonaStore defines the interface for per-guild persona settings.
type PersonaStore interface {
	// Get returns the persona configured for guildID.
	// Returns ErrPersonaNotFound if the guild has none.
	Get(ctx context.Context, guildID string) (domain.Persona, error)

	// Set stores persona as the guild's current persona, replacing any previous one.
	Set(ctx context.Context, guildID string, persona domain.Persona) error

	// Clear removes the guild's persona. Clearing an unset persona is not an error.
	Clear(ctx context.Context, guildID string) error
}
