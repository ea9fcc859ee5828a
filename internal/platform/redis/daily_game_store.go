package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

const (
	dailyGameGuildsKey = "daily_games:guilds"

	// maxTxAttempts bounds optimistic-lock retries when two writers race on one guild.
	maxTxAttempts = 5
)

// DailyGameStore implements the store.DailyGameStore interface.
type DailyGameStore struct {
	client goredis.UniversalClient
	logger *slog.Logger
}

var _ store.DailyGameStore = (*DailyGameStore)(nil)

// NewDailyGameStore creates a Redis-backed DailyGameStore.
func NewDailyGameStore(client goredis.UniversalClient, logger *slog.Logger) *DailyGameStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyGameStore{
		client: client,
		logger: logger.With(slog.String("component", "daily_game_store")),
	}
}

func dailyGamesKey(guildID string) string {
	return fmt.Sprintf("daily_games:%s", guildID)
}

// Save implements store.DailyGameStore.Save. The uniqueness check and the
// write run under WATCH so that concurrent registrations cannot both win.
func (s *DailyGameStore) Save(ctx context.Context, guildID string, game *domain.DailyGame) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := game.Validate(); err != nil {
		log.Warn("daily game validation failed during save",
			slog.String("guild_id", guildID),
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to encode daily game: %w", err)
	}

	key := dailyGamesKey(guildID)
	txf := func(tx *goredis.Tx) error {
		raw, err := tx.HGet(ctx, key, game.Name).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
		case err != nil:
			return err
		default:
			var existing domain.DailyGame
			if err := json.Unmarshal(raw, &existing); err != nil {
				return decodeError("daily_game", err)
			}
			if existing.ChannelID != game.ChannelID {
				return store.ErrGameNameTaken
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, game.Name, data)
			pipe.SAdd(ctx, dailyGameGuildsKey, guildID)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, goredis.TxFailedErr) {
			break
		}
		log.Debug("daily game save raced, retrying", slog.Int("attempt", attempt+1))
	}
	if err != nil {
		return MapError(err, "daily_game", "save", nil)
	}

	log.Info("daily game saved",
		slog.String("guild_id", guildID),
		slog.String("game_name", game.Name),
		slog.String("channel_id", game.ChannelID))
	return nil
}

// Get implements store.DailyGameStore.Get.
func (s *DailyGameStore) Get(ctx context.Context, guildID, name string) (*domain.DailyGame, error) {
	raw, err := s.client.HGet(ctx, dailyGamesKey(guildID), name).Bytes()
	if err != nil {
		return nil, MapError(err, "daily_game", "get", store.ErrDailyGameNotFound)
	}

	var game domain.DailyGame
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, decodeError("daily_game", err)
	}
	return &game, nil
}

// Delete implements store.DailyGameStore.Delete.
func (s *DailyGameStore) Delete(ctx context.Context, guildID, name string) error {
	key := dailyGamesKey(guildID)

	removed, err := s.client.HDel(ctx, key, name).Result()
	if err != nil {
		return MapError(err, "daily_game", "delete", nil)
	}
	if removed == 0 {
		return store.ErrDailyGameNotFound
	}

	remaining, err := s.client.HLen(ctx, key).Result()
	if err != nil {
		return MapError(err, "daily_game", "delete", nil)
	}
	if remaining == 0 {
		if err := s.client.SRem(ctx, dailyGameGuildsKey, guildID).Err(); err != nil {
			return MapError(err, "daily_game", "delete", nil)
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("daily game deleted",
		slog.String("guild_id", guildID),
		slog.String("game_name", name))
	return nil
}

// List implements store.DailyGameStore.List.
func (s *DailyGameStore) List(ctx context.Context, guildID string) ([]*domain.DailyGame, error) {
	entries, err := s.client.HGetAll(ctx, dailyGamesKey(guildID)).Result()
	if err != nil {
		return nil, MapError(err, "daily_game", "list", nil)
	}

	games := make([]*domain.DailyGame, 0, len(entries))
	for name, raw := range entries {
		var game domain.DailyGame
		if err := json.Unmarshal([]byte(raw), &game); err != nil {
			// One corrupt record must not hide the rest of the guild's games.
			logger.FromContextOrDefault(ctx, s.logger).Error("skipping corrupt daily game",
				slog.String("guild_id", guildID),
				slog.String("game_name", name),
				slog.String("error", err.Error()))
			continue
		}
		games = append(games, &game)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].Name < games[j].Name })
	return games, nil
}

// ListAll implements store.DailyGameStore.ListAll.
func (s *DailyGameStore) ListAll(ctx context.Context) (map[string][]*domain.DailyGame, error) {
	guilds, err := s.client.SMembers(ctx, dailyGameGuildsKey).Result()
	if err != nil {
		return nil, MapError(err, "daily_game", "list_all", nil)
	}

	out := make(map[string][]*domain.DailyGame, len(guilds))
	for _, guildID := range guilds {
		games, err := s.List(ctx, guildID)
		if err != nil {
			return nil, err
		}
		if len(games) > 0 {
			out[guildID] = games
		}
	}
	return out, nil
}
