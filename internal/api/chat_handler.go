package api

import (
	"net/http"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/service"
)

// ChatHandler accepts chat requests and queues them for a reply.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Submit handles POST /api/chat. The reply is posted to the channel later;
// the response only acknowledges admission.
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	receipt, err := h.chat.Submit(r.Context(), req.toCommand())
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", "5")
		}
		HandleAPIError(w, r, err, "Failed to queue chat request")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, ChatResponse{
		TaskID:      receipt.TaskID.String(),
		QueuedAhead: receipt.QueuedAhead,
	})
}
