package api

import (
	"net/http"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/service"
)

// DailyGameHandler handles daily game reminder HTTP requests
type DailyGameHandler struct {
	games *service.DailyGameService
}

// NewDailyGameHandler creates a new DailyGameHandler
func NewDailyGameHandler(games *service.DailyGameService) *DailyGameHandler {
	return &DailyGameHandler{games: games}
}

// Register handles POST /api/daily-games.
func (h *DailyGameHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterGameRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	game, err := h.games.Register(r.Context(), service.RegisterGame{
		GuildID:   req.GuildID,
		ChannelID: req.ChannelID,
		Name:      req.Name,
		Link:      req.Link,
		Hour:      req.Hour,
		Minute:    req.Minute,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register daily game")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, game)
}

// List handles GET /api/daily-games/{guild_id}.
func (h *DailyGameHandler) List(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}

	games, err := h.games.List(r.Context(), guildID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list daily games")
		return
	}
	if games == nil {
		games = []*domain.DailyGame{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, games)
}

// Update handles PATCH /api/daily-games/{guild_id}/{name}.
func (h *DailyGameHandler) Update(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}

	var req UpdateGameRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	game, err := h.games.SetEnabled(r.Context(), guildID, name, *req.Enabled)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update daily game")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, game)
}

// Preview handles GET /api/daily-games/{guild_id}/{name}/preview.
func (h *DailyGameHandler) Preview(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}

	msg, err := h.games.Preview(r.Context(), guildID, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to preview daily game")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GamePreviewResponse{Message: msg})
}

// Unregister handles DELETE /api/daily-games/{guild_id}/{name}.
func (h *DailyGameHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}
	name, ok := pathParam(w, r, "name")
	if !ok {
		return
	}

	if err := h.games.Unregister(r.Context(), guildID, name); err != nil {
		HandleAPIError(w, r, err, "Failed to unregister daily game")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
