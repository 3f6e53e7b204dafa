// Package pubsub fans values out to subscribers without ever blocking the
// publisher. The nav bar controller publishes its visibility, sample and
// theme events here; the trace command and tests read them back.
package pubsub

import (
	"context"
	"sync"
)

// Broker delivers each published value to every live subscriber.
//
// Delivery is a non-blocking send into the subscriber's buffer, made
// before Publish returns. A subscriber whose buffer is full misses the
// value; other subscribers are unaffected.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan T]struct{}
	buffer int
}

// NewBroker creates a broker whose subscriptions buffer size values. A
// size below 1 means 16.
func NewBroker[T any](size int) *Broker[T] {
	if size < 1 {
		size = 16
	}
	return &Broker[T]{subs: make(map[chan T]struct{}), buffer: size}
}

// Subscribe returns a channel of published values. It is closed once ctx
// is done.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, b.buffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, ch)
		close(ch)
	}()
	return ch
}

// Publish sends v to every subscriber and returns how many missed it
// because their buffer was full.
func (b *Broker[T]) Publish(v T) (dropped int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- v:
		default:
			dropped++
		}
	}
	return dropped
}

// Subscribers returns the number of live subscriptions.
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
