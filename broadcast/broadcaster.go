// Package broadcast fans chat traffic out to every connected session.
package broadcast

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Broadcaster distributes published lines to all current subscribers.
//
// It provides best-effort fan-out with bounded per-subscriber queues:
// when a subscriber's queue is full its oldest entry is dropped so the
// publisher never blocks on a slow reader. Each subscriber sees
// publishes in publish order; cross-subscriber order during concurrent
// publishes is unspecified. A publish with zero subscribers is a no-op.
//
// Broadcaster is safe for concurrent use by multiple goroutines.
type Broadcaster struct {
	log         *slog.Logger
	bufferSize  int
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
	dropped     atomic.Uint64
}

// Subscriber is one independent delivery queue. It only receives lines
// published after Subscribe; past traffic is never replayed.
type Subscriber struct {
	ch      chan string
	dropped atomic.Uint64
}

// C is the delivery stream. The channel is deliberately never closed:
// a publish racing an unsubscribe must not panic. A removed subscriber
// simply stops receiving.
func (s *Subscriber) C() <-chan string {
	return s.ch
}

// TakeDropped returns the number of deliveries lost to queue overflow
// since the previous call and resets the counter. The session turns a
// nonzero value into a missed-messages notice for its client only.
func (s *Subscriber) TakeDropped() uint64 {
	return s.dropped.Swap(0)
}

func NewBroadcaster(log *slog.Logger, bufferSize int) *Broadcaster {
	return &Broadcaster{
		log:         log,
		bufferSize:  bufferSize,
		subscribers: make(map[*Subscriber]struct{}),
	}
}

func (b *Broadcaster) Subscribe() *Subscriber {
	sub := &Subscriber{ch: make(chan string, b.bufferSize)}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[sub] = struct{}{}
	return sub
}

// Unsubscribe removes the subscriber; no further lines are delivered.
// Removing an already removed subscriber is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subscribers, sub)
}

// Publish delivers text to every current subscriber's queue without
// ever blocking the caller.
func (b *Broadcaster) Publish(text string) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subscribers {
		b.deliver(sub, text)
	}
}

func (b *Broadcaster) deliver(sub *Subscriber, text string) {
	select {
	case sub.ch <- text:
		return
	default:
	}

	// Queue full: evict the oldest entry, then retry once. The second
	// send can still lose to a concurrent publisher; count the loss
	// instead of waiting.
	select {
	case <-sub.ch:
		b.countDrop(sub)
	default:
	}
	select {
	case sub.ch <- text:
	default:
		b.countDrop(sub)
	}
}

func (b *Broadcaster) countDrop(sub *Subscriber) {
	sub.dropped.Add(1)
	b.dropped.Add(1)
	b.log.Debug("Subscriber queue overflow, oldest delivery dropped")
}

// Stats is a sampled snapshot used by telemetry.
type Stats struct {
	Subscribers int
	Queued      int
	Dropped     uint64
}

func (b *Broadcaster) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	queued := 0
	for sub := range b.subscribers {
		queued += len(sub.ch)
	}
	return Stats{
		Subscribers: len(b.subscribers),
		Queued:      queued,
		Dropped:     b.dropped.Load(),
	}
}
