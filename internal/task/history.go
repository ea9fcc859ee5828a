package task

import "github.com/google/uuid"

// history keeps the most recently finished tasks in a fixed-size ring so
// that memory stays bounded regardless of total task volume.
type history struct {
	size  int
	ring  []uuid.UUID
	next  int
	index map[uuid.UUID]Info
}

func newHistory(size int) *history {
	if size < 0 {
		size = 0
	}
	return &history{
		size:  size,
		ring:  make([]uuid.UUID, 0, size),
		index: make(map[uuid.UUID]Info, size),
	}
}

func (h *history) add(info Info) {
	if h.size == 0 {
		return
	}
	if len(h.ring) < h.size {
		h.ring = append(h.ring, info.ID)
	} else {
		delete(h.index, h.ring[h.next])
		h.ring[h.next] = info.ID
	}
	h.next = (h.next + 1) % h.size
	h.index[info.ID] = info
}

func (h *history) get(id uuid.UUID) (Info, bool) {
	info, ok := h.index[id]
	return info, ok
}

func (h *history) len() int {
	return len(h.index)
}
