// Package gemini provides an implementation of the generation.Generator
// interface backed by Google's Gemini API.
//
// The adapter turns a generation.Request into a Gemini call: the persona and
// user name are rendered into a system instruction from a text/template, the
// conversation history becomes alternating user/model turns, and the
// current message is appended as the final user turn. Transient API errors
// are retried with exponential backoff and jitter; empty or safety-blocked
// responses are permanent and returned immediately.
package gemini
