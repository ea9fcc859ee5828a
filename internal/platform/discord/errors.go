package discord

import "errors"

var (
	// ErrRateLimited is returned when Discord answers 429 Too Many Requests.
	ErrRateLimited = errors.New("discord rate limit exceeded")

	// ErrRequestFailed is returned for any other non-2xx response.
	ErrRequestFailed = errors.New("discord request failed")

	// ErrEmptyContent is returned when there is nothing to post.
	ErrEmptyContent = errors.New("message content cannot be empty")

	// ErrMissingChannel is returned when no channel ID is given.
	ErrMissingChannel = errors.New("channel ID cannot be empty")
)
