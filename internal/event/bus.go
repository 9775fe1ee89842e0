package event

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const subscriberBuffer = 256

type subscriber struct {
	ch   chan Event
	once sync.Once
}

// InMemoryBus fans events out to every subscriber within the process.
type InMemoryBus struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	closed      bool
	dropped     atomic.Int64
}

func NewBus() *InMemoryBus {
	return &InMemoryBus{subscribers: make(map[*subscriber]struct{})}
}

// Publish never blocks the caller: a subscriber with a full buffer misses the event.
func (b *InMemoryBus) Publish(e Event) {
	if b == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub.ch <- e:
		default:
			b.dropped.Add(1)
			slog.Warn("event dropped for slow subscriber", "type", e.Type, "event_id", e.ID)
		}
	}
}

// Subscribe returns a buffered channel and an idempotent cancel func. On a
// closed bus the channel is already closed.
func (b *InMemoryBus) Subscribe() (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.subscribers[sub] = struct{}{}

	return sub.ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.remove(sub)
	}
}

// Close ends every subscription. Later publishes are no-ops.
func (b *InMemoryBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for sub := range b.subscribers {
		b.remove(sub)
	}
}

// Dropped counts deliveries skipped because a subscriber was full.
func (b *InMemoryBus) Dropped() int64 {
	return b.dropped.Load()
}

func (b *InMemoryBus) remove(sub *subscriber) {
	sub.once.Do(func() {
		delete(b.subscribers, sub)
		close(sub.ch)
	})
}
