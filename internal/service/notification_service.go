package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/events"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/redact"
	"github.com/phrazzld/cunningbot/internal/store"
	"github.com/phrazzld/cunningbot/internal/task"
)

// NotificationService keeps the set of update channels and announces bot
// lifecycle changes to them. It is an events.EventHandler.
type NotificationService struct {
	channels store.UpdateChannelStore
	queue    TaskQueue
	poster   Poster
	botName  string
	logger   *slog.Logger
}

var _ events.EventHandler = (*NotificationService)(nil)

// NewNotificationService creates a NotificationService. botName is used when
// an event payload does not carry one.
func NewNotificationService(
	channels store.UpdateChannelStore,
	queue TaskQueue,
	poster Poster,
	botName string,
	logger *slog.Logger,
) (*NotificationService, error) {
	if channels == nil || queue == nil || poster == nil {
		return nil, errors.New("notification service requires a channel store, a queue and a poster")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		channels: channels,
		queue:    queue,
		poster:   poster,
		botName:  botName,
		logger:   logger.With("component", "notification_service"),
	}, nil
}

// RestartMessage is posted to update channels when the bot comes online.
func RestartMessage(botName string) string {
	return fmt.Sprintf("**%s** has restarted and is now online.", botName)
}

// ShutdownMessage is posted to update channels when the bot is stopping.
func ShutdownMessage(botName string) string {
	return fmt.Sprintf("**%s** is shutting down.", botName)
}

// Register adds channelID to the update channels.
func (s *NotificationService) Register(ctx context.Context, channelID string) error {
	if strings.TrimSpace(channelID) == "" {
		return domain.NewValidationError("channel_id", "cannot be empty")
	}
	if err := s.channels.Register(ctx, channelID); err != nil {
		return mapStoreError("notification", "register", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("update channel registered", "channel_id", channelID)
	return nil
}

// Unregister removes channelID from the update channels.
func (s *NotificationService) Unregister(ctx context.Context, channelID string) error {
	if err := s.channels.Unregister(ctx, channelID); err != nil {
		return mapStoreError("notification", "unregister", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("update channel unregistered", "channel_id", channelID)
	return nil
}

// Channels lists the registered update channels.
func (s *NotificationService) Channels(ctx context.Context) ([]string, error) {
	ids, err := s.channels.List(ctx)
	if err != nil {
		return nil, mapStoreError("notification", "list", err)
	}
	return ids, nil
}

// HandleEvent enqueues a notice to every update channel for lifecycle
// events. Other event types are ignored.
func (s *NotificationService) HandleEvent(ctx context.Context, event *events.Event) error {
	var message func(string) string
	switch event.Type {
	case events.TypeBotStarted:
		message = RestartMessage
	case events.TypeBotStopping:
		message = ShutdownMessage
	default:
		return nil
	}

	var payload events.LifecyclePayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}
	name := payload.BotName
	if name == "" {
		name = s.botName
	}

	return s.broadcast(ctx, event.Type, message(name))
}

func (s *NotificationService) broadcast(ctx context.Context, name, content string) error {
	channels, err := s.channels.List(ctx)
	if err != nil {
		return mapStoreError("notification", "broadcast", err)
	}

	var errs []error
	for _, channelID := range channels {
		channelID := channelID
		_, err := enqueue(s.queue, func(ctx context.Context) error {
			return s.poster.Post(ctx, channelID, content)
		}, task.WithName(name), task.WithOrigin(task.Origin{ChannelID: channelID}))
		if err != nil {
			s.logger.Warn("failed to enqueue lifecycle notice",
				"error", redact.Error(err),
				"channel_id", channelID)
			errs = append(errs, err)
		}
	}

	s.logger.Info("lifecycle notices enqueued",
		"event_type", name,
		"channels", len(channels),
		"failed", len(errs))
	return errors.Join(errs...)
}
