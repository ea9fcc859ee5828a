package generation

import (
	"context"
	"strings"
)

// Role identifies the speaker of a conversation turn.
type Role string

// Conversation roles understood by every generator
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one earlier message in the conversation, oldest first.
type Turn struct {
	Role    Role
	Author  string
	Content string
}

// Request carries everything a generator needs to write one reply.
type Request struct {
	// Message is the text the user asked the bot to answer.
	Message string

	// UserName is the display name of the asking user.
	UserName string

	// Persona is the instruction text describing how the bot should behave.
	Persona string

	// History holds earlier turns of the conversation, oldest first.
	History []Turn
}

// Validate checks that the request has a message to answer.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Generator defines the interface for producing chat replies.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Reply returns the bot's answer to req.
	// Errors wrap one of the sentinel errors declared in this package.
	Reply(ctx context.Context, req Request) (string, error)
}
