package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// PersonaStore implements the store.PersonaStore interface.
type PersonaStore struct {
	client goredis.Cmdable
	logger *slog.Logger
}

var _ store.PersonaStore = (*PersonaStore)(nil)

// NewPersonaStore creates a Redis-backed PersonaStore.
// If logger is nil, a default logger will be used.
func NewPersonaStore(client goredis.Cmdable, logger *slog.Logger) *PersonaStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonaStore{
		client: client,
		logger: logger.With(slog.String("component", "persona_store")),
	}
}

func personaKey(guildID string) string {
	return fmt.Sprintf("settings:%s:persona", guildID)
}

// Get implements store.PersonaStore.Get.
func (s *PersonaStore) Get(ctx context.Context, guildID string) (domain.Persona, error) {
	raw, err := s.client.Get(ctx, personaKey(guildID)).Bytes()
	if err != nil {
		return domain.Persona{}, MapError(err, "persona", "get", store.ErrPersonaNotFound)
	}

	var p domain.Persona
	if err := json.Unmarshal(raw, &p); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to decode persona",
			slog.String("guild_id", guildID),
			slog.String("error", err.Error()))
		return domain.Persona{}, decodeError("persona", err)
	}
	return p, nil
}

// Set implements store.PersonaStore.Set.
func (s *PersonaStore) Set(ctx context.Context, guildID string, persona domain.Persona) error {
	data, err := json.Marshal(persona)
	if err != nil {
		return fmt.Errorf("failed to encode persona: %w", err)
	}

	if err := s.client.Set(ctx, personaKey(guildID), data, 0).Err(); err != nil {
		return MapError(err, "persona", "set", nil)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("persona stored",
		slog.String("guild_id", guildID),
		slog.String("persona_key", persona.Key))
	return nil
}

// Clear implements store.PersonaStore.Clear.
func (s *PersonaStore) Clear(ctx context.Context, guildID string) error {
	if err := s.client.Del(ctx, personaKey(guildID)).Err(); err != nil {
		return MapError(err, "persona", "clear", nil)
	}
	return nil
}
