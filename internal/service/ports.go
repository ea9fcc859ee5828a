package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/cunningbot/internal/task"
)

// TaskQueue defines the interface for submitting background tasks.
type TaskQueue interface {
	// Enqueue adds a job to the tail of the queue without waiting for it.
	Enqueue(job task.Job, opts ...task.EnqueueOption) (uuid.UUID, error)

	// Status returns a snapshot of queue load.
	Status() task.Stats
}

// Poster delivers a message to a chat channel.
type Poster interface {
	Post(ctx context.Context, channelID, content string) error
}

// ThreadPoster also opens a public thread on the message it posts. Thread
// failures are logged by the implementation and do not fail the post.
type ThreadPoster interface {
	Poster
	PostWithThread(ctx context.Context, channelID, content, threadName string) error
}

var _ TaskQueue = (*task.Queue)(nil)
