package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/store"
)

// PersonaService manages which persona each guild's replies use.
type PersonaService struct {
	store  store.PersonaStore
	logger *slog.Logger
}

// NewPersonaService creates a PersonaService.
func NewPersonaService(personas store.PersonaStore, logger *slog.Logger) (*PersonaService, error) {
	if personas == nil {
		return nil, errors.New("persona store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonaService{
		store:  personas,
		logger: logger.With("component", "persona_service"),
	}, nil
}

// Presets returns the built-in personas.
func (s *PersonaService) Presets() []domain.Persona {
	return domain.PresetPersonas()
}

// Current returns the guild's persona, or the default persona if none is set.
func (s *PersonaService) Current(ctx context.Context, guildID string) (domain.Persona, error) {
	if strings.TrimSpace(guildID) == "" {
		return domain.Persona{}, domain.NewValidationError("guild_id", "cannot be empty")
	}

	p, err := s.store.Get(ctx, guildID)
	if errors.Is(err, store.ErrPersonaNotFound) {
		return domain.DefaultPersona(), nil
	}
	if err != nil {
		return domain.Persona{}, NewServiceError("persona", "current", err)
	}
	return p, nil
}

// SetPreset makes the preset named key the guild's persona.
func (s *PersonaService) SetPreset(ctx context.Context, guildID, key string) (domain.Persona, error) {
	p, ok := domain.LookupPersona(strings.TrimSpace(key))
	if !ok {
		return domain.Persona{}, fmt.Errorf("%w: %q", domain.ErrUnknownPersona, key)
	}
	return s.set(ctx, guildID, p)
}

// SetCustom makes free-form text the guild's persona.
func (s *PersonaService) SetCustom(ctx context.Context, guildID, text string) (domain.Persona, error) {
	p, err := domain.NewCustomPersona(text)
	if err != nil {
		return domain.Persona{}, err
	}
	return s.set(ctx, guildID, p)
}

// Clear reverts the guild to the default persona.
func (s *PersonaService) Clear(ctx context.Context, guildID string) error {
	if strings.TrimSpace(guildID) == "" {
		return domain.NewValidationError("guild_id", "cannot be empty")
	}
	if err := s.store.Clear(ctx, guildID); err != nil {
		return NewServiceError("persona", "clear", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("persona cleared", "guild_id", guildID)
	return nil
}

func (s *PersonaService) set(ctx context.Context, guildID string, p domain.Persona) (domain.Persona, error) {
	if strings.TrimSpace(guildID) == "" {
		return domain.Persona{}, domain.NewValidationError("guild_id", "cannot be empty")
	}
	if err := s.store.Set(ctx, guildID, p); err != nil {
		return domain.Persona{}, NewServiceError("persona", "set", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("persona updated",
		"guild_id", guildID,
		"persona", p.Key,
		"custom", p.Custom)
	return p, nil
}
