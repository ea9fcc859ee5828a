package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/domain/dice"
	"github.com/phrazzld/cunningbot/internal/service"
	"github.com/phrazzld/cunningbot/internal/service/auth"
	"github.com/phrazzld/cunningbot/internal/store"
	"github.com/phrazzld/cunningbot/internal/task"
)

// errBadRequestBody marks a body that could not be decoded.
var errBadRequestBody = errors.New("invalid request body")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrBusy),
		errors.Is(err, task.ErrQueueClosed):
		return http.StatusServiceUnavailable

	case errors.Is(err, service.ErrNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, errBadRequestBody),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownPersona),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, dice.ErrInvalidExpression),
		errors.Is(err, dice.ErrNoDice),
		errors.Is(err, dice.ErrDiceLimit),
		errors.Is(err, dice.ErrDivisionByZero),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrBusy):
		return "The bot is busy, please try again shortly"
	case errors.Is(err, task.ErrQueueClosed):
		return "The bot is shutting down"

	case errors.Is(err, store.ErrDailyGameNotFound):
		return "Daily game not found"
	case errors.Is(err, store.ErrChannelNotFound):
		return "Channel is not registered for updates"
	case errors.Is(err, store.ErrPersonaNotFound):
		return "Persona not found"
	case errors.Is(err, service.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrGameNameTaken):
		return "A game with that name is already registered in another channel"
	case errors.Is(err, store.ErrChannelExists):
		return "Channel is already registered for updates"
	case errors.Is(err, service.ErrConflict):
		return "Resource already exists"

	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message)
	case errors.As(err, &verrs):
		return SanitizeValidationError(verrs)
	case errors.Is(err, domain.ErrUnknownPersona):
		return "Unknown persona"
	case errors.Is(err, errBadRequestBody):
		return "Invalid request format"

	// Dice errors only echo the caller's own expression.
	case errors.Is(err, dice.ErrInvalidExpression),
		errors.Is(err, dice.ErrNoDice),
		errors.Is(err, dice.ErrDiceLimit),
		errors.Is(err, dice.ErrDivisionByZero):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError describes the first failed field of a validator
// error without exposing Go type names.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "url", "http_url":
		return "invalid URL"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error response for err. fallback replaces the
// generic message for unexpected errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
