package task

import (
	"context"
	"time"
)

// WithTimeout wraps job so that its context is cancelled after d. The queue
// itself imposes no deadline; callers that own a job body opt in here.
// A non-positive d returns job unchanged.
func WithTimeout(job Job, d time.Duration) Job {
	if d <= 0 {
		return job
	}
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return job(ctx)
	}
}
