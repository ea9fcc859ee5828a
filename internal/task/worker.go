package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/phrazzld/cunningbot/internal/platform/logger"
	"github.com/phrazzld/cunningbot/internal/redact"
)

// work is the single consumer. It sleeps on the channel receive while the
// queue is empty and exits when stop is closed.
func (q *Queue) work(done chan struct{}) {
	defer close(done)
	defer q.workerRunning.Store(false)

	q.logger.Debug("task queue worker waiting for tasks")

	for {
		select {
		case <-q.stop:
			q.logger.Info("task queue worker stopped")
			return

		case rec := <-q.pending:
			// Both channels may be ready at once; shutdown wins.
			select {
			case <-q.stop:
				q.discard(rec)
				q.logger.Info("task queue worker stopped")
				return
			default:
			}
			q.run(rec)
		}
	}
}

// run executes one task and records its outcome. It never panics and never
// returns an error; failures are logged and counted.
func (q *Queue) run(rec *record) {
	log := q.logger.With(rec.logAttrs()...)

	if !rec.expiresAt.IsZero() && q.now().After(rec.expiresAt) {
		q.finish(rec, StatusExpired, ErrTaskExpired)
		q.expired.Add(1)
		q.completed.Add(1)
		log.Warn("task expired before it could start",
			"waited", q.now().Sub(rec.enqueuedAt).String())
		return
	}

	q.mu.Lock()
	rec.status = StatusActive
	rec.startedAt = q.now()
	q.mu.Unlock()
	q.active.Add(1)

	log.Info("processing task", "queue_len", len(q.pending))

	err := q.execute(rec, log)
	duration := q.now().Sub(rec.startedAt)

	if err != nil {
		q.finish(rec, StatusFailed, err)
		q.active.Add(-1)
		q.failed.Add(1)
		q.completed.Add(1)
		log.Error("task execution failed",
			"error", redact.Error(err),
			"duration", duration.String())
		return
	}

	q.finish(rec, StatusCompleted, nil)
	q.active.Add(-1)
	q.completed.Add(1)
	log.Info("task completed successfully", "duration", duration.String())
}

// execute invokes the job inside its own error boundary so that neither an
// error nor a panic can escape into the worker loop.
func (q *Queue) execute(rec *record, log *slog.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("task panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	// Shutdown never cancels this context; an in-flight job runs to completion.
	ctx := logger.WithLogger(context.Background(), log)
	ctx = context.WithValue(ctx, taskIDKey{}, rec.id)
	return rec.job(ctx)
}

// finish moves a task out of the live index and into history.
func (q *Queue) finish(rec *record, status Status, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	rec.status = status
	rec.finishedAt = q.now()
	if err != nil {
		rec.err = redact.Error(err)
	}
	rec.job = nil

	delete(q.tasks, rec.id)
	q.outstanding--
	q.history.add(rec.info())
}
