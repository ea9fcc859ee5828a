package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/cunningbot/internal/config"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/generation"
	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/redact"
	"github.com/phrazzld/cunningbot/internal/store"
	"github.com/phrazzld/cunningbot/internal/task"
)

// ChatErrorMessage is posted to the channel when a chat job fails.
const ChatErrorMessage = "Sorry, an error occurred while processing your request."

// errorNoticeTimeout bounds the apology post, which runs even after the job's
// own context has expired.
const errorNoticeTimeout = 10 * time.Second

// ChatCommand is one user's request for a reply.
type ChatCommand struct {
	GuildID   string
	ChannelID string
	UserID    string
	UserName  string
	Message   string

	// History is recent channel conversation, oldest first.
	History []generation.Turn
}

// Validate checks the command's required fields.
func (c ChatCommand) Validate() error {
	if strings.TrimSpace(c.ChannelID) == "" {
		return domain.NewValidationError("channel_id", "cannot be empty")
	}
	if strings.TrimSpace(c.Message) == "" {
		return domain.NewValidationError("message", "cannot be empty")
	}
	return nil
}

// Receipt acknowledges an accepted chat command.
type Receipt struct {
	TaskID uuid.UUID `json:"task_id"`

	// QueuedAhead is how many tasks were queued or running when the command
	// was accepted.
	QueuedAhead int `json:"queued_ahead"`
}

// ChatService turns chat commands into queued reply jobs.
type ChatService struct {
	queue      TaskQueue
	generator  generation.Generator
	poster     Poster
	personas   store.PersonaStore
	expiry     time.Duration
	jobTimeout time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewChatService creates a ChatService.
// It returns an error if any of the required dependencies are nil.
func NewChatService(
	queue TaskQueue,
	generator generation.Generator,
	poster Poster,
	personas store.PersonaStore,
	cfg config.QueueConfig,
	logger *slog.Logger,
) (*ChatService, error) {
	if queue == nil {
		return nil, errors.New("queue cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if poster == nil {
		return nil, errors.New("poster cannot be nil")
	}
	if personas == nil {
		return nil, errors.New("persona store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ChatService{
		queue:      queue,
		generator:  generator,
		poster:     poster,
		personas:   personas,
		expiry:     time.Duration(cfg.TaskExpiryMinutes) * time.Minute,
		jobTimeout: time.Duration(cfg.JobTimeoutSeconds) * time.Second,
		now:        time.Now,
		logger:     logger.With("component", "chat_service"),
	}, nil
}

// Submit validates cmd and enqueues a job that generates and posts the reply.
// It returns as soon as the job is admitted. A full queue yields ErrBusy.
func (s *ChatService) Submit(ctx context.Context, cmd ChatCommand) (Receipt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := cmd.Validate(); err != nil {
		return Receipt{}, err
	}

	ahead := s.queue.Status()
	opts := []task.EnqueueOption{
		task.WithName("chat"),
		task.WithOrigin(task.Origin{
			UserID:    cmd.UserID,
			UserName:  cmd.UserName,
			GuildID:   cmd.GuildID,
			ChannelID: cmd.ChannelID,
		}),
	}
	if s.expiry > 0 {
		opts = append(opts, task.WithExpiry(s.now().Add(s.expiry)))
	}

	job := s.chatJob(cmd)
	if s.jobTimeout > 0 {
		job = task.WithTimeout(job, s.jobTimeout)
	}

	id, err := enqueue(s.queue, job, opts...)
	if err != nil {
		log.Warn("chat command rejected",
			"error", redact.Error(err),
			"channel_id", cmd.ChannelID,
			"user_id", cmd.UserID)
		if errors.Is(err, ErrBusy) {
			return Receipt{}, err
		}
		return Receipt{}, NewServiceError("chat", "submit", err)
	}

	receipt := Receipt{TaskID: id, QueuedAhead: ahead.QueueSize + ahead.ActiveTasks}
	log.Info("chat command queued",
		"task_id", id,
		"queued_ahead", receipt.QueuedAhead,
		"channel_id", cmd.ChannelID)
	return receipt, nil
}

func (s *ChatService) chatJob(cmd ChatCommand) task.Job {
	return func(ctx context.Context) error {
		persona := s.currentPersona(ctx, cmd.GuildID)

		reply, err := s.generator.Reply(ctx, generation.Request{
			Message:  cmd.Message,
			UserName: cmd.UserName,
			Persona:  persona.Instructions,
			History:  cmd.History,
		})
		if err != nil {
			s.postErrorNotice(ctx, cmd.ChannelID)
			return fmt.Errorf("generate reply: %w", err)
		}

		for _, chunk := range domain.SplitMessage(FormatChatReply(cmd, reply, persona), domain.MaxMessageLength) {
			if err := s.poster.Post(ctx, cmd.ChannelID, chunk); err != nil {
				s.postErrorNotice(ctx, cmd.ChannelID)
				return fmt.Errorf("post reply: %w", err)
			}
		}
		return nil
	}
}

// currentPersona returns the guild's persona, falling back to the default
// when none is set or the store is unavailable.
func (s *ChatService) currentPersona(ctx context.Context, guildID string) domain.Persona {
	if guildID == "" {
		return domain.DefaultPersona()
	}
	p, err := s.personas.Get(ctx, guildID)
	if err != nil {
		if !errors.Is(err, store.ErrPersonaNotFound) {
			s.logger.Warn("failed to load persona, using default",
				"error", redact.Error(err),
				"guild_id", guildID)
		}
		return domain.DefaultPersona()
	}
	return p
}

func (s *ChatService) postErrorNotice(ctx context.Context, channelID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), errorNoticeTimeout)
	defer cancel()

	if err := s.poster.Post(ctx, channelID, ChatErrorMessage); err != nil {
		s.logger.Error("failed to post error notice",
			"error", redact.Error(err),
			"channel_id", channelID)
	}
}

// FormatChatReply quotes the user's message above the reply and appends the
// persona name in superscript.
func FormatChatReply(cmd ChatCommand, reply string, persona domain.Persona) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(cmd.Message), "\n") {
		b.WriteString("> ")
		if b.Len() == 2 && cmd.UserName != "" {
			b.WriteString("**" + cmd.UserName + ":** ")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(reply))
	b.WriteString("\n\n")
	b.WriteString(domain.TinyText(persona.Name))
	return b.String()
}
