// Package generation defines the boundary between the bot and the LLM service
// that writes its replies. Services depend on the Generator interface; the
// Gemini-backed implementation lives in internal/platform/gemini.
package generation
