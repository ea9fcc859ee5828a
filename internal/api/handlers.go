package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cunningbot/internal/api/shared"
)

// decodeAndValidate reads a JSON body into req and validates it, writing a
// 400 response and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", errBadRequestBody, err), "")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}

// pathParam returns the trimmed route parameter, writing a 400 response and
// returning false when it is blank.
func pathParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := strings.TrimSpace(chi.URLParam(r, name))
	if v == "" {
		HandleAPIError(w, r, errMissingPathParam(name), "")
		return "", false
	}
	return v, true
}
