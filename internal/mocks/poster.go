package mocks

import (
	"context"
	"sync"
)

// Post is one recorded outbound message.
type Post struct {
	ChannelID string
	Content   string
	// Thread is the thread name requested with the message, if any.
	Thread string
}

// MockPoster records outbound messages instead of sending them.
type MockPoster struct {
	// PostFn allows test cases to mock the Post behavior
	PostFn func(ctx context.Context, channelID, content string) error

	// Err is returned when PostFn is nil
	Err error

	mu    sync.Mutex
	posts []Post
}

// Post records the message and returns PostFn's result or Err.
func (m *MockPoster) Post(ctx context.Context, channelID, content string) error {
	m.mu.Lock()
	m.posts = append(m.posts, Post{ChannelID: channelID, Content: content})
	m.mu.Unlock()

	if m.PostFn != nil {
		return m.PostFn(ctx, channelID, content)
	}
	return m.Err
}

// PostWithThread records the message with its thread name and returns
// PostFn's result or Err.
func (m *MockPoster) PostWithThread(ctx context.Context, channelID, content, threadName string) error {
	m.mu.Lock()
	m.posts = append(m.posts, Post{ChannelID: channelID, Content: content, Thread: threadName})
	m.mu.Unlock()

	if m.PostFn != nil {
		return m.PostFn(ctx, channelID, content)
	}
	return m.Err
}

// Posts returns a copy of every recorded message in order.
func (m *MockPoster) Posts() []Post {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Post(nil), m.posts...)
}

// PostCount returns how many messages were recorded.
func (m *MockPoster) PostCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts)
}
