package api

import (
	"net/http"
	"strings"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/service"
)

// PersonaHandler handles persona-related HTTP requests
type PersonaHandler struct {
	personas *service.PersonaService
}

// NewPersonaHandler creates a new PersonaHandler
func NewPersonaHandler(personas *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{personas: personas}
}

// List handles GET /api/personas. With a guild_id query parameter the
// guild's current persona is included.
func (h *PersonaHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := PersonasResponse{Presets: h.personas.Presets()}

	if guildID := strings.TrimSpace(r.URL.Query().Get("guild_id")); guildID != "" {
		current, err := h.personas.Current(r.Context(), guildID)
		if err != nil {
			HandleAPIError(w, r, err, "Failed to load persona")
			return
		}
		resp.Current = &current
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Set handles PUT /api/personas/{guild_id}.
func (h *PersonaHandler) Set(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}

	var req SetPersonaRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var (
		persona domain.Persona
		err     error
	)
	if strings.TrimSpace(req.Key) != "" {
		persona, err = h.personas.SetPreset(r.Context(), guildID, req.Key)
	} else {
		persona, err = h.personas.SetCustom(r.Context(), guildID, req.Text)
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update persona")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, persona)
}

// Clear handles DELETE /api/personas/{guild_id}.
func (h *PersonaHandler) Clear(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathParam(w, r, "guild_id")
	if !ok {
		return
	}

	if err := h.personas.Clear(r.Context(), guildID); err != nil {
		HandleAPIError(w, r, err, "Failed to clear persona")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
