package generation

import "errors"

// Common errors returned by generators
var (
	// ErrGenerationFailed is returned when a reply could not be produced for any general reason
	ErrGenerationFailed = errors.New("failed to generate reply")

	// ErrInvalidResponse is returned when the LLM response is empty or malformed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during reply generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyMessage is returned when a request carries no message to answer
	ErrEmptyMessage = errors.New("message cannot be empty")
)
