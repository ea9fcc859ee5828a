package api

import (
	"net/http"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/service"
)

// UpdateChannelHandler manages the channels that receive restart notices.
type UpdateChannelHandler struct {
	notifications *service.NotificationService
}

// NewUpdateChannelHandler creates a new UpdateChannelHandler
func NewUpdateChannelHandler(notifications *service.NotificationService) *UpdateChannelHandler {
	return &UpdateChannelHandler{notifications: notifications}
}

// Register handles POST /api/updates/channels.
func (h *UpdateChannelHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterChannelRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.notifications.Register(r.Context(), req.ChannelID); err != nil {
		HandleAPIError(w, r, err, "Failed to register channel")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, req)
}

// List handles GET /api/updates/channels.
func (h *UpdateChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.notifications.Channels(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list channels")
		return
	}
	if ids == nil {
		ids = []string{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChannelsResponse{Channels: ids})
}

// Unregister handles DELETE /api/updates/channels/{channel_id}.
func (h *UpdateChannelHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	channelID, ok := pathParam(w, r, "channel_id")
	if !ok {
		return
	}

	if err := h.notifications.Unregister(r.Context(), channelID); err != nil {
		HandleAPIError(w, r, err, "Failed to unregister channel")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
