package broadcast

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"signalx/internal/models"
)

type EventType string

const (
	EventNewSignal      EventType = "new_signal"
	EventSignalResolved EventType = "signal_resolved"
)

// Event is one frame pushed to connected viewers. The payload is the full
// current representation of the affected signal.
type Event struct {
	Type   EventType     `json:"event"`
	Signal models.Signal `json:"data"`
}

// Publisher is the only capability the lifecycle service depends on.
// Delivery is fire-and-forget: no ack, no retry, no backlog for late joiners.
type Publisher interface {
	Publish(ev Event)
}

// Hub fans events out to every currently connected subscriber. Slow
// subscribers are skipped rather than blocking the publishing request.
type Hub struct {
	mu      sync.RWMutex
	subs    map[chan Event]struct{}
	logger  *zap.Logger
	dropped uint64
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   map[chan Event]struct{}{},
		logger: logger,
	}
}

// Subscribe registers a new subscriber and returns its channel plus a cancel
// function. Cancel removes the subscriber and closes the channel; it is safe
// to call concurrently with Publish.
func (h *Hub) Subscribe(buf int) (<-chan Event, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan Event, buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			close(ch)
			h.mu.Unlock()
		})
	}
	return ch, cancel
}

func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			// Never block the mutating request on a stalled viewer.
			atomic.AddUint64(&h.dropped, 1)
			if h.logger != nil {
				h.logger.Debug("dropped broadcast event",
					zap.String("event", string(ev.Type)),
					zap.Uint64("dropped_total", atomic.LoadUint64(&h.dropped)),
				)
			}
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}
