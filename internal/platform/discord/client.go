package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/redact"
)

// Client posts messages to Discord channels.
type Client struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// NewClient creates a Client authenticated with the configured bot token.
// Rate-limited requests are not retried by the library; they surface as
// ErrRateLimited so that the task that sent them fails visibly.
func NewClient(cfg config.DiscordConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BotToken == "" {
		return nil, errors.New("discord bot token cannot be empty")
	}

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %s", redact.Error(err))
	}

	transport, err := newRebaseTransport(cfg.APIBaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid discord API base URL: %w", err)
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	session.Client = &http.Client{Timeout: timeout, Transport: transport}
	session.ShouldRetryOnRateLimit = false
	session.MaxRestRetries = 1

	return &Client{
		session: session,
		logger:  logger.With(slog.String("component", "discord_client")),
	}, nil
}

// ThreadArchiveMinutes is how long a daily thread stays open without activity.
const ThreadArchiveMinutes = 1440

// Post sends content to channelID as a single message.
func (c *Client) Post(ctx context.Context, channelID, content string) error {
	_, err := c.send(ctx, channelID, content)
	return err
}

// PostWithThread sends content to channelID and starts a public thread named
// threadName on the new message. No thread is started when channelID is
// itself a thread. Thread errors are logged and not returned once the message
// is delivered.
func (c *Client) PostWithThread(ctx context.Context, channelID, content, threadName string) error {
	msg, err := c.send(ctx, channelID, content)
	if err != nil {
		return err
	}
	if strings.TrimSpace(threadName) == "" {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, c.logger).With(
		slog.String("channel_id", channelID),
		slog.String("thread_name", threadName))

	channel, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		log.Error("failed to look up channel for thread",
			slog.String("error", redact.Error(mapError(err))))
		return nil
	}
	if channel.IsThread() {
		log.Debug("target is already a thread, not starting another")
		return nil
	}

	thread, err := c.session.MessageThreadStartComplex(channelID, msg.ID, &discordgo.ThreadStart{
		Name:                threadName,
		AutoArchiveDuration: ThreadArchiveMinutes,
		Type:                discordgo.ChannelTypeGuildPublicThread,
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error("failed to start thread",
			slog.String("message_id", msg.ID),
			slog.String("error", redact.Error(mapError(err))))
		return nil
	}

	log.Info("thread started",
		slog.String("message_id", msg.ID),
		slog.String("thread_id", thread.ID))
	return nil
}

func (c *Client) send(ctx context.Context, channelID, content string) (*discordgo.Message, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if strings.TrimSpace(channelID) == "" {
		return nil, ErrMissingChannel
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	msg, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		mapped := mapError(err)
		log.Error("failed to post discord message",
			slog.String("channel_id", channelID),
			slog.String("error", redact.Error(mapped)))
		return nil, mapped
	}

	log.Debug("discord message posted",
		slog.String("channel_id", channelID),
		slog.String("message_id", msg.ID),
		slog.Int("length", len(content)))
	return msg, nil
}

// mapError converts discordgo errors into this package's sentinels.
func mapError(err error) error {
	var rateErr *discordgo.RateLimitError
	if errors.As(err, &rateErr) {
		return fmt.Errorf("%w: retry after %s", ErrRateLimited, rateErr.RetryAfter)
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		if restErr.Response.StatusCode == http.StatusTooManyRequests {
			return ErrRateLimited
		}
		return fmt.Errorf("%w: status %d", ErrRequestFailed, restErr.Response.StatusCode)
	}

	if errors.Is(err, discordgo.ErrUnauthorized) {
		return fmt.Errorf("%w: unauthorized", ErrRequestFailed)
	}

	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
