package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/store"
)

// RegisterGame is a request to schedule a daily game reminder.
type RegisterGame struct {
	GuildID   string
	ChannelID string
	Name      string
	Link      string
	Hour      int
	Minute    int
}

// DueGame is a game whose reminder belongs to the current slot.
type DueGame struct {
	GuildID string
	Game    *domain.DailyGame
}

// DailyGameService manages daily game reminders and decides which are due.
type DailyGameService struct {
	store    store.DailyGameStore
	location *time.Location
	logger   *slog.Logger
}

// NewDailyGameService creates a DailyGameService whose schedules are read in
// the configured timezone.
func NewDailyGameService(
	games store.DailyGameStore,
	cfg config.DailyGameConfig,
	logger *slog.Logger,
) (*DailyGameService, error) {
	if games == nil {
		return nil, errors.New("daily game store cannot be nil")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyGameService{
		store:    games,
		location: loc,
		logger:   logger.With("component", "daily_game_service"),
	}, nil
}

// Location returns the timezone schedules are expressed in.
func (s *DailyGameService) Location() *time.Location {
	return s.location
}

// Register validates and saves a game, enabled. Registering an existing name
// in the same channel replaces it; a name used by another channel in the
// guild returns ErrConflict.
func (s *DailyGameService) Register(ctx context.Context, req RegisterGame) (*domain.DailyGame, error) {
	if strings.TrimSpace(req.GuildID) == "" {
		return nil, domain.NewValidationError("guild_id", "cannot be empty")
	}
	game, err := domain.NewDailyGame(req.Name, req.Link, req.ChannelID, req.Hour, req.Minute)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, req.GuildID, game); err != nil {
		return nil, mapStoreError("daily_game", "register", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("daily game registered",
		"guild_id", req.GuildID,
		"game", game.Name,
		"channel_id", game.ChannelID,
		"hour", game.Hour,
		"minute", game.Minute)
	return game, nil
}

// Unregister deletes the named game.
func (s *DailyGameService) Unregister(ctx context.Context, guildID, name string) error {
	if err := s.store.Delete(ctx, guildID, strings.TrimSpace(name)); err != nil {
		return mapStoreError("daily_game", "unregister", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("daily game unregistered",
		"guild_id", guildID,
		"game", name)
	return nil
}

// List returns the guild's games sorted by name.
func (s *DailyGameService) List(ctx context.Context, guildID string) ([]*domain.DailyGame, error) {
	games, err := s.store.List(ctx, guildID)
	if err != nil {
		return nil, mapStoreError("daily_game", "list", err)
	}
	return games, nil
}

// SetEnabled turns the named game's reminder on or off.
func (s *DailyGameService) SetEnabled(
	ctx context.Context,
	guildID, name string,
	enabled bool,
) (*domain.DailyGame, error) {
	game, err := s.store.Get(ctx, guildID, strings.TrimSpace(name))
	if err != nil {
		return nil, mapStoreError("daily_game", "set_enabled", err)
	}
	if game.Enabled == enabled {
		return game, nil
	}

	game.Enabled = enabled
	if err := s.store.Save(ctx, guildID, game); err != nil {
		return nil, mapStoreError("daily_game", "set_enabled", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("daily game toggled",
		"guild_id", guildID,
		"game", game.Name,
		"enabled", enabled)
	return game, nil
}

// Preview returns the reminder text the named game would post.
func (s *DailyGameService) Preview(ctx context.Context, guildID, name string) (string, error) {
	game, err := s.store.Get(ctx, guildID, strings.TrimSpace(name))
	if err != nil {
		return "", mapStoreError("daily_game", "preview", err)
	}
	return game.Message(), nil
}

// DueGames returns every enabled game scheduled for the 10-minute slot
// containing now, read in the service's timezone.
func (s *DailyGameService) DueGames(ctx context.Context, now time.Time) ([]DueGame, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, mapStoreError("daily_game", "due_games", err)
	}

	local := now.In(s.location)
	var due []DueGame
	for guildID, games := range all {
		for _, g := range games {
			if g.DueAt(local) {
				due = append(due, DueGame{GuildID: guildID, Game: g})
			}
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].GuildID != due[j].GuildID {
			return due[i].GuildID < due[j].GuildID
		}
		return due[i].Game.Name < due[j].Game.Name
	})
	return due, nil
}
