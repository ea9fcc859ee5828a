package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/cunningbot/internal/task"
)

// enqueue submits job and translates a full queue into ErrBusy while keeping
// the queue's own error in the chain.
func enqueue(q TaskQueue, job task.Job, opts ...task.EnqueueOption) (uuid.UUID, error) {
	id, err := q.Enqueue(job, opts...)
	if errors.Is(err, task.ErrQueueFull) {
		return uuid.Nil, fmt.Errorf("%w: %w", ErrBusy, err)
	}
	return id, err
}
