package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/cunningbot/internal/api/shared"
	"github.com/phrazzld/cunningbot/internal/domain"
	"github.com/phrazzld/cunningbot/internal/task"
)

// QueueInspector exposes read-only queue state.
type QueueInspector interface {
	Status() task.Stats
	Task(id uuid.UUID) (task.Info, bool)
	Capacity() int
}

// QueueHandler reports task queue state to monitoring callers.
type QueueHandler struct {
	queue QueueInspector
}

// NewQueueHandler creates a new QueueHandler
func NewQueueHandler(queue QueueInspector) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// Status handles GET /api/queue.
func (h *QueueHandler) Status(w http.ResponseWriter, r *http.Request) {
	s := h.queue.Status()
	shared.RespondWithJSON(w, r, http.StatusOK, QueueStatusResponse{
		QueueSize:      s.QueueSize,
		ActiveTasks:    s.ActiveTasks,
		CompletedTasks: s.CompletedTasks,
		FailedTasks:    s.FailedTasks,
		ExpiredTasks:   s.ExpiredTasks,
		WorkerRunning:  s.WorkerRunning,
		Capacity:       h.queue.Capacity(),
	})
}

// Task handles GET /api/queue/tasks/{id}.
func (h *QueueHandler) Task(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathParam(w, r, "id")
	if !ok {
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("id", "must be a UUID"), "")
		return
	}

	info, found := h.queue.Task(id)
	if !found {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

var _ QueueInspector = (*task.Queue)(nil)
