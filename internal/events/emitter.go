package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/cunningbot/internal/redact"
)

// ErrHandlerPanicked wraps a panic raised by a subscriber.
var ErrHandlerPanicked = errors.New("event handler panicked")

type subscription struct {
	handler EventHandler
	types   []string
}

func (s subscription) wants(eventType string) bool {
	return len(s.types) == 0 || slices.Contains(s.types, eventType)
}

// Dispatcher delivers lifecycle events synchronously to its subscribers in
// subscription order.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

var _ EventEmitter = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with no subscribers.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger.With("component", "event_dispatcher")}
}

// Subscribe registers handler for the given event types, or for every type
// when none are given.
func (d *Dispatcher) Subscribe(handler EventHandler, types ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, subscription{handler: handler, types: types})
	d.logger.Debug("event handler subscribed", "types", types, "subscriber_count", len(d.subs))
}

// EmitEvent hands event to every interested subscriber. A failing or
// panicking subscriber does not stop delivery to the rest; their errors are
// joined in the result.
func (d *Dispatcher) EmitEvent(ctx context.Context, event *Event) error {
	d.mu.RLock()
	subs := slices.Clone(d.subs)
	d.mu.RUnlock()

	log := d.logger.With("event_id", event.ID, "event_type", event.Type)

	var errs []error
	delivered := 0
	for i, sub := range subs {
		if !sub.wants(event.Type) {
			continue
		}
		delivered++
		if err := deliver(ctx, sub.handler, event); err != nil {
			log.Error("event handler failed", "error", redact.Error(err), "subscriber", i)
			errs = append(errs, err)
		}
	}

	if delivered == 0 {
		log.Warn("no subscribers for event")
	} else {
		log.Debug("event delivered", "subscribers", delivered, "failures", len(errs))
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, h EventHandler, event *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanicked, r)
		}
	}()
	return h.HandleEvent(ctx, event)
}
