package redis

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const updateChannelsKey = "bot_updates:channels"

// UpdateChannelStore implements the store.UpdateChannelStore interface.
type UpdateChannelStore struct {
	client goredis.Cmdable
	logger *slog.Logger
}

var _ store.UpdateChannelStore = (*UpdateChannelStore)(nil)

// NewUpdateChannelStore creates a Redis-backed UpdateChannelStore.
func NewUpdateChannelStore(client goredis.Cmdable, logger *slog.Logger) *UpdateChannelStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateChannelStore{
		client: client,
		logger: logger.With(slog.String("component", "update_channel_store")),
	}
}

// Register implements store.UpdateChannelStore.Register.
func (s *UpdateChannelStore) Register(ctx context.Context, channelID string) error {
	added, err := s.client.SAdd(ctx, updateChannelsKey, channelID).Result()
	if err != nil {
		return MapError(err, "update_channel", "register", nil)
	}
	if added == 0 {
		return store.ErrChannelExists
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("update channel registered",
		slog.String("channel_id", channelID))
	return nil
}

// Unregister implements store.UpdateChannelStore.Unregister.
func (s *UpdateChannelStore) Unregister(ctx context.Context, channelID string) error {
	removed, err := s.client.SRem(ctx, updateChannelsKey, channelID).Result()
	if err != nil {
		return MapError(err, "update_channel", "unregister", nil)
	}
	if removed == 0 {
		return store.ErrChannelNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("update channel unregistered",
		slog.String("channel_id", channelID))
	return nil
}

// IsRegistered implements store.UpdateChannelStore.IsRegistered.
func (s *UpdateChannelStore) IsRegistered(ctx context.Context, channelID string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, updateChannelsKey, channelID).Result()
	if err != nil {
		return false, MapError(err, "update_channel", "is_registered", nil)
	}
	return ok, nil
}

// List implements store.UpdateChannelStore.List.
func (s *UpdateChannelStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, updateChannelsKey).Result()
	if err != nil {
		return nil, MapError(err, "update_channel", "list", nil)
	}
	sort.Strings(ids)
	return ids, nil
}
