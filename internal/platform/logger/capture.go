package logger

import (
	"context"
	"log/slog"
	"sync"
)

// Entry is a captured log record flattened into a map.
type Entry map[string]any

// CaptureHandler is a memory-backed slog.Handler used by tests to assert on
// emitted records. Attributes added through With are preserved.
type CaptureHandler struct {
	mu      *sync.Mutex
	entries *[]Entry
	attrs   []slog.Attr
	level   slog.Leveler
}

// NewCaptureHandler creates a handler that records every entry at or above level.
func NewCaptureHandler(level slog.Leveler) *CaptureHandler {
	if level == nil {
		level = slog.LevelDebug
	}
	entries := make([]Entry, 0)
	return &CaptureHandler{
		mu:      &sync.Mutex{},
		entries: &entries,
		level:   level,
	}
}

// Enabled satisfies slog.Handler.
func (h *CaptureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle satisfies slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := Entry{
		"level":   r.Level.String(),
		"message": r.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.entries = append(*h.entries, entry)
	return nil
}

// WithAttrs satisfies slog.Handler.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{mu: h.mu, entries: h.entries, attrs: merged, level: h.level}
}

// WithGroup satisfies slog.Handler. Groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Entries returns a copy of all captured entries.
func (h *CaptureHandler) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(*h.entries))
	copy(out, *h.entries)
	return out
}

// Messages returns the message of every captured entry, in order.
func (h *CaptureHandler) Messages() []string {
	entries := h.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if msg, ok := e["message"].(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
