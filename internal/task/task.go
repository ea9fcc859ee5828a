package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a task
type Status string

// Possible task status values
const (
	StatusQueued    Status = "queued"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusExpired   Status = "expired"
)

// Finished reports whether s is a terminal status.
func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusExpired
}

// Job is the unit of work carried by a task. Any arguments are captured by
// the closure at enqueue time. A returned error marks the task as failed;
// reporting the failure to the end user is the job's own responsibility.
type Job func(ctx context.Context) error

// Origin identifies who asked for a task. It is only used for logging and
// introspection; the queue never interprets it.
type Origin struct {
	UserID    string `json:"user_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
	GuildID   string `json:"guild_id,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
}

// IsZero reports whether no origin fields are set.
func (o Origin) IsZero() bool {
	return o == Origin{}
}

// LogValue implements slog.LogValuer so an Origin logs as a group.
func (o Origin) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 4)
	if o.UserID != "" {
		attrs = append(attrs, slog.String("user_id", o.UserID))
	}
	if o.UserName != "" {
		attrs = append(attrs, slog.String("user_name", o.UserName))
	}
	if o.GuildID != "" {
		attrs = append(attrs, slog.String("guild_id", o.GuildID))
	}
	if o.ChannelID != "" {
		attrs = append(attrs, slog.String("channel_id", o.ChannelID))
	}
	return slog.GroupValue(attrs...)
}

// Info is a point-in-time snapshot of a single task.
type Info struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Status     Status    `json:"status"`
	Origin     Origin    `json:"origin"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	StartedAt  time.Time `json:"started_at,omitempty"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Stats is a best-effort snapshot of queue load. Each field is read
// atomically, but the fields are not read together.
type Stats struct {
	QueueSize      int  `json:"queue_size"`
	ActiveTasks    int  `json:"active_tasks"`
	CompletedTasks int  `json:"completed_tasks"`
	FailedTasks    int  `json:"failed_tasks"`
	ExpiredTasks   int  `json:"expired_tasks"`
	WorkerRunning  bool `json:"worker_running"`
}

// EnqueueOption customizes a task at submission time.
type EnqueueOption func(*record)

// WithName labels the task for logs and introspection.
func WithName(name string) EnqueueOption {
	return func(r *record) {
		r.name = name
	}
}

// WithOrigin attaches the requesting user and channel to the task.
func WithOrigin(origin Origin) EnqueueOption {
	return func(r *record) {
		r.origin = origin
	}
}

// WithExpiry skips the task if it has not started by deadline. Such a task
// finishes with StatusExpired and its job is never invoked.
func WithExpiry(deadline time.Time) EnqueueOption {
	return func(r *record) {
		r.expiresAt = deadline
	}
}

type taskIDKey struct{}

// IDFromContext returns the ID of the task whose job is running with ctx.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(taskIDKey{}).(uuid.UUID)
	return id, ok
}

// record is the queue's internal bookkeeping for one task.
type record struct {
	id         uuid.UUID
	name       string
	job        Job
	origin     Origin
	expiresAt  time.Time
	status     Status
	enqueuedAt time.Time
	startedAt  time.Time
	finishedAt time.Time
	err        string
}

func (r *record) info() Info {
	return Info{
		ID:         r.id,
		Name:       r.name,
		Status:     r.status,
		Origin:     r.origin,
		EnqueuedAt: r.enqueuedAt,
		StartedAt:  r.startedAt,
		FinishedAt: r.finishedAt,
		Error:      r.err,
	}
}

func (r *record) logAttrs() []any {
	attrs := []any{"task_id", r.id, "task_name", r.name}
	if !r.origin.IsZero() {
		attrs = append(attrs, "origin", r.origin)
	}
	return attrs
}
