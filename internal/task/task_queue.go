package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by the Queue
var (
	ErrQueueClosed  = errors.New("task queue is closed")
	ErrQueueFull    = errors.New("task queue is full")
	ErrNilJob       = errors.New("task job cannot be nil")
	ErrTaskExpired  = errors.New("task expired before it started")
	ErrTaskPanicked = errors.New("task panicked")
)

// Config holds configuration options for the queue
type Config struct {
	// Capacity is the maximum number of admitted but unfinished tasks.
	// If zero or negative, defaults to 10.
	Capacity int

	// HistorySize is the number of finished tasks kept for lookup by ID.
	// Negative values disable history.
	HistorySize int
}

// DefaultConfig returns a Config with the bot's standard limits
func DefaultConfig() Config {
	return Config{
		Capacity:    10,
		HistorySize: 50,
	}
}

// Queue is a bounded FIFO of jobs executed one at a time by a single
// background worker. Enqueue never blocks: once capacity tasks are admitted
// but unfinished (queued plus the one active), further tasks are rejected
// with ErrQueueFull. The active task holds a slot, so while a task runs at
// most capacity-1 can wait behind it. This is one fewer than a queue that
// bounds only waiting tasks. The worker is started lazily by the first
// successful Enqueue and runs until Shutdown.
type Queue struct {
	pending chan *record
	logger  *slog.Logger
	now     func() time.Time

	// mu guards closed, done, outstanding, tasks and history, and every
	// status change on a record.
	mu          sync.Mutex
	closed      bool
	done        chan struct{}
	outstanding int
	tasks       map[uuid.UUID]*record
	history     *history

	stop chan struct{}

	active        atomic.Int64
	completed     atomic.Int64
	failed        atomic.Int64
	expired       atomic.Int64
	workerRunning atomic.Bool
}

// New creates a queue. No goroutine is started until the first task arrives.
func New(cfg Config, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}

	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = DefaultConfig().Capacity
		logger.Warn("invalid queue capacity specified, using default",
			"specified_capacity", cfg.Capacity,
			"default_capacity", capacity)
	}

	return &Queue{
		pending: make(chan *record, capacity),
		logger:  logger.With("component", "task_queue"),
		now:     time.Now,
		tasks:   make(map[uuid.UUID]*record),
		history: newHistory(cfg.HistorySize),
		stop:    make(chan struct{}),
	}
}

// Capacity returns the maximum number of admitted but unfinished tasks.
func (q *Queue) Capacity() int {
	return cap(q.pending)
}

// Enqueue appends job to the tail of the queue and returns the new task's ID
// without waiting for it to run. It returns ErrQueueFull when the queue is at
// capacity and ErrQueueClosed after Shutdown.
func (q *Queue) Enqueue(job Job, opts ...EnqueueOption) (uuid.UUID, error) {
	if job == nil {
		return uuid.Nil, ErrNilJob
	}

	rec := &record{
		id:         uuid.New(),
		job:        job,
		status:     StatusQueued,
		enqueuedAt: q.now(),
	}
	for _, opt := range opts {
		opt(rec)
	}

	// Holding mu across the send keeps the capacity check and the append
	// atomic with respect to other producers and to Shutdown.
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return uuid.Nil, ErrQueueClosed
	}

	if q.outstanding >= cap(q.pending) {
		return uuid.Nil, q.rejectLocked(rec)
	}

	select {
	case q.pending <- rec:
	default:
		return uuid.Nil, q.rejectLocked(rec)
	}

	q.outstanding++
	q.tasks[rec.id] = rec
	q.startWorkerLocked()

	q.logger.Info("task enqueued",
		append(rec.logAttrs(),
			"queue_len", len(q.pending),
			"queue_cap", cap(q.pending))...)

	return rec.id, nil
}

// Status returns the current queue counters. It never blocks on the worker.
func (q *Queue) Status() Stats {
	return Stats{
		QueueSize:      len(q.pending),
		ActiveTasks:    int(q.active.Load()),
		CompletedTasks: int(q.completed.Load()),
		FailedTasks:    int(q.failed.Load()),
		ExpiredTasks:   int(q.expired.Load()),
		WorkerRunning:  q.workerRunning.Load(),
	}
}

// Task returns a snapshot of a queued or active task, or of one of the most
// recently finished tasks.
func (q *Queue) Task(id uuid.UUID) (Info, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if rec, ok := q.tasks[id]; ok {
		return rec.info(), true
	}
	return q.history.get(id)
}

// Shutdown stops accepting tasks, drops every task that has not started and
// stops the worker once its in-flight job returns. If ctx ends before the
// in-flight job returns, Shutdown returns the context error; the job keeps
// running in the background.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.stop)
	done := q.done
	q.mu.Unlock()

	q.logger.Info("task queue shutting down", "queue_len", len(q.pending))

	// The worker discards anything it receives after stop, so draining here
	// races with it only over who drops a task.
	if dropped := q.drain(); dropped > 0 {
		q.logger.Warn("dropped queued tasks on shutdown", "dropped_count", dropped)
	}

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			q.logger.Warn("task queue shutdown timed out waiting for active task",
				"active_tasks", q.active.Load())
			return fmt.Errorf("waiting for active task: %w", ctx.Err())
		}
	}

	q.logger.Info("task queue stopped", "completed_tasks", q.completed.Load())
	return nil
}

// rejectLocked logs an admission rejection and builds its error.
// The caller must hold q.mu.
func (q *Queue) rejectLocked(rec *record) error {
	q.logger.Warn("task rejected, queue is full",
		append(rec.logAttrs(),
			"queue_len", len(q.pending),
			"outstanding", q.outstanding,
			"queue_cap", cap(q.pending))...)
	return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.pending))
}

// startWorkerLocked launches the worker goroutine if it is not running.
// The caller must hold q.mu.
func (q *Queue) startWorkerLocked() {
	if q.workerRunning.Load() {
		return
	}
	q.workerRunning.Store(true)
	q.done = make(chan struct{})
	go q.work(q.done)
	q.logger.Info("task queue worker started")
}

// drain removes every task that has not started and returns how many were dropped.
func (q *Queue) drain() int {
	dropped := 0
	for {
		select {
		case rec := <-q.pending:
			q.discard(rec)
			dropped++
		default:
			return dropped
		}
	}
}

// discard forgets a task that will never run.
func (q *Queue) discard(rec *record) {
	q.mu.Lock()
	delete(q.tasks, rec.id)
	q.outstanding--
	q.mu.Unlock()
	q.logger.Debug("task dropped", rec.logAttrs()...)
}
