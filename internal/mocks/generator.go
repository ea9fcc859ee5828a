package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cunningbot/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// ReplyFn allows test cases to mock the Reply behavior
	ReplyFn func(ctx context.Context, req generation.Request) (string, error)

	// Default response values
	Text string
	Err   error

	mu       sync.Mutex
	requests []generation.Request
}

var _ generation.Generator = (*MockGenerator)(nil)

// Reply implements the generation.Generator interface
func (m *MockGenerator) Reply(ctx context.Context, req generation.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.ReplyFn != nil {
		return m.ReplyFn(ctx, req)
	}
	return m.Text, m.Err
}

// Requests returns a copy of every request received so far.
func (m *MockGenerator) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.Request(nil), m.requests...)
}
