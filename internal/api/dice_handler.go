package api

import (
	"net/http"

	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/domain/dice"
)

// DiceHandler rolls dice synchronously; rolling needs no outbound call.
type DiceHandler struct {
	roller *dice.Roller
}

// NewDiceHandler creates a new DiceHandler
func NewDiceHandler(roller *dice.Roller) *DiceHandler {
	return &DiceHandler{roller: roller}
}

// Roll handles POST /api/roll.
func (h *DiceHandler) Roll(w http.ResponseWriter, r *http.Request) {
	var req RollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.roller.Roll(req.Expression)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to roll dice")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
