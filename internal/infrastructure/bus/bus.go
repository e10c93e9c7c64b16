// Package bus provides the in-process publish/subscribe channel used to
// fan notification events out to connected listeners.
package bus

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tailormate/tailormate-api/internal/core/ports"
)

const defaultBuffer = 64

// Bus fans events out to all matching subscribers. Each subscriber owns a
// buffered channel; when the buffer is full the event is dropped for that
// subscriber (at-most-once, no queueing for slow or disconnected
// listeners).
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]*subscriber
	nextID int
	closed bool
	buffer int
	log    zerolog.Logger
}

type subscriber struct {
	ch     chan ports.Event
	filter func(ports.Event) bool
}

// New creates a Bus whose subscriber channels hold up to buffer events.
func New(buffer int, log zerolog.Logger) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{
		subs:   make(map[int]*subscriber),
		buffer: buffer,
		log:    log,
	}
}

// Publish delivers ev to every subscriber whose filter matches. The call
// never blocks: full subscriber buffers drop the event.
func (b *Bus) Publish(ev ports.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for id, sub := range b.subs {
		if sub.filter != nil && !sub.filter(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			b.log.Debug().Int("subscriber", id).Str("event", ev.Name).Msg("subscriber buffer full, event dropped")
		}
	}
}

// Subscribe registers a listener. A nil filter matches every event. The
// returned func removes the subscription and closes the channel; it is
// safe to call more than once.
func (b *Bus) Subscribe(filter func(ports.Event) bool) (<-chan ports.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ports.Event, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = &subscriber{ch: ch, filter: filter}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return ch, cancel
}

// Close shuts the bus down, closing every subscriber channel. Publish and
// Subscribe become no-ops afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
