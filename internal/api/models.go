package api

import (
	"errors"
	"strings"

	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/generation"
	"github.com/phrazzld/cunningbot/internal/service"
)

// HistoryTurn is one earlier message supplied as conversation context.
type HistoryTurn struct {
	Role    string `json:"role"    validate:"required,oneof=user assistant"`
	Author  string `json:"author"  validate:"max=100"`
	Content string `json:"content" validate:"required,max=4000"`
}

// ChatRequest defines the payload for POST /api/chat.
type ChatRequest struct {
	GuildID   string        `json:"guild_id"   validate:"max=32"`
	ChannelID string        `json:"channel_id" validate:"required,max=32"`
	UserID    string        `json:"user_id"    validate:"max=32"`
	UserName  string        `json:"user_name"  validate:"max=100"`
	Message   string        `json:"message"    validate:"required,max=4000"`
	History   []HistoryTurn `json:"history"    validate:"max=50,dive"`
}

// toCommand converts the request into a service command.
func (r ChatRequest) toCommand() service.ChatCommand {
	cmd := service.ChatCommand{
		GuildID:   r.GuildID,
		ChannelID: r.ChannelID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Message:   r.Message,
	}
	for _, t := range r.History {
		cmd.History = append(cmd.History, generation.Turn{
			Role:    generation.Role(t.Role),
			Author:  t.Author,
			Content: t.Content,
		})
	}
	return cmd
}

// ChatResponse acknowledges an accepted chat request.
type ChatResponse struct {
	TaskID      string `json:"task_id"`
	QueuedAhead int    `json:"queued_ahead"`
}

// RollRequest defines the payload for POST /api/roll. An empty expression
// rolls 1d20.
type RollRequest struct {
	Expression string `json:"expression" validate:"max=200"`
}

// PersonasResponse lists the presets and, when a guild is given, its current persona.
type PersonasResponse struct {
	Presets []domain.Persona `json:"presets"`
	Current *domain.Persona  `json:"current,omitempty"`
}

// SetPersonaRequest selects a preset by key or supplies custom text.
type SetPersonaRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Validate requires exactly one of Key and Text.
func (r SetPersonaRequest) Validate() error {
	hasKey := strings.TrimSpace(r.Key) != ""
	hasText := strings.TrimSpace(r.Text) != ""
	if hasKey == hasText {
		return domain.NewValidationError("persona", "provide exactly one of key or text")
	}
	return nil
}

// RegisterGameRequest defines the payload for POST /api/daily-games.
type RegisterGameRequest struct {
	GuildID   string `json:"guild_id"   validate:"required,max=32"`
	ChannelID string `json:"channel_id" validate:"required,max=32"`
	Name      string `json:"name"       validate:"required,max=100"`
	Link      string `json:"link"       validate:"required,http_url,max=500"`
	Hour      int    `json:"hour"       validate:"gte=0,lte=23"`
	Minute    int    `json:"minute"     validate:"oneof=0 10 20 30 40 50"`
}

// UpdateGameRequest defines the payload for PATCH /api/daily-games/{guild_id}/{name}.
type UpdateGameRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// GamePreviewResponse carries the reminder text a game would post.
type GamePreviewResponse struct {
	Message string `json:"message"`
}

// RegisterChannelRequest defines the payload for POST /api/updates/channels.
type RegisterChannelRequest struct {
	ChannelID string `json:"channel_id" validate:"required,max=32"`
}

// ChannelsResponse lists the registered update channels.
type ChannelsResponse struct {
	Channels []string `json:"channels"`
}

// QueueStatusResponse reports queue load for monitoring callers.
type QueueStatusResponse struct {
	QueueSize      int  `json:"queue_size"`
	ActiveTasks    int  `json:"active_tasks"`
	CompletedTasks int  `json:"completed_tasks"`
	FailedTasks    int  `json:"failed_tasks"`
	ExpiredTasks   int  `json:"expired_tasks"`
	WorkerRunning  bool `json:"worker_running"`
	Capacity       int  `json:"capacity"`
}

// errMissingPathParam is returned when a route parameter is blank.
func errMissingPathParam(name string) error {
	return errors.Join(errBadRequestBody, domain.NewValidationError(name, "is required"))
}
