// Package streaming fans events out to live subscribers, such as the map
// selection websocket.
package streaming

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 16

// Subscription is one subscriber's view of a Bus.
type Subscription[T any] struct {
	ID        string
	CreatedAt time.Time
	C         <-chan T

	ch      chan T
	dropped atomic.Int64
}

// Dropped counts events not delivered because the subscriber was full.
func (s *Subscription[T]) Dropped() int64 {
	return s.dropped.Load()
}

// Bus delivers every published value to every subscriber. Publish never
// blocks: a subscriber whose buffer is full misses the event.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription[T]
	buffer int
	closed bool
}

func NewBus[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Bus[T]{
		subs:   make(map[string]*Subscription[T]),
		buffer: buffer,
	}
}

// Subscribe registers a subscriber. On a closed bus the returned channel is
// already closed.
func (b *Bus[T]) Subscribe() *Subscription[T] {
	ch := make(chan T, b.buffer)
	sub := &Subscription[T]{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		C:         ch,
		ch:        ch,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return sub
	}
	b.subs[sub.ID] = sub
	return sub
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub *Subscription[T]) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.subs[sub.ID]; ok {
		close(existing.ch)
		delete(b.subs, sub.ID)
	}
}

// Publish offers v to every subscriber and returns how many accepted it.
func (b *Bus[T]) Publish(v T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}
	delivered := 0
	for _, sub := range b.subs {
		select {
		case sub.ch <- v:
			delivered++
		default:
			sub.dropped.Add(1)
		}
	}
	return delivered
}

// Len is the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}
