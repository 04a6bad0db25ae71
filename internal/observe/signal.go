// SPDX-License-Identifier: Apache-2.0

// Package observe provides the small reactive primitive the application is
// built around: a Signal holding the latest value of some changing state,
// with context-scoped subscriptions.
//
// Delivery is single-slot, latest-value-only. A subscriber that has not yet
// consumed a pending value simply has it replaced by the next one; values
// are never queued and Set never blocks. This matches the needs of a UI
// state pipeline, where only the newest value matters.
package observe

import (
	"context"
	"sync"
)

// Signal is an explicitly-owned reactive cell. The zero value is not usable;
// construct with [NewSignal] or [NewSignalOf].
type Signal[T any] struct {
	mu     sync.Mutex
	value  T
	set    bool
	closed bool
	subs   map[int]chan T
	nextID int
}

// NewSignal returns an empty Signal. Subscribers receive nothing until the
// first Set.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{subs: make(map[int]chan T)}
}

// NewSignalOf returns a Signal pre-loaded with an initial value, delivered
// immediately to every new subscriber.
func NewSignalOf[T any](v T) *Signal[T] {
	s := NewSignal[T]()
	s.value = v
	s.set = true
	return s
}

// Set stores v as the current value and delivers it to every live
// subscriber, replacing any value they have not consumed yet. Set on a
// closed Signal is a no-op.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.value = v
	s.set = true
	for _, ch := range s.subs {
		deliver(ch, v)
	}
}

// Get returns the current value and whether one has been set.
func (s *Signal[T]) Get() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Subscribe registers a new subscriber and returns its receive channel.
// If a value is already present it is delivered immediately. The
// subscription lives until ctx is cancelled or the Signal is closed; the
// channel is closed in either case.
func (s *Signal[T]) Subscribe(ctx context.Context) <-chan T {
	s.mu.Lock()

	ch := make(chan T, 1)
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch
	}

	if s.set {
		ch <- s.value
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}()

	return ch
}

// Close terminates the Signal: all subscriber channels are closed, the held
// value is dropped, and subsequent Set calls are ignored. Safe to call more
// than once.
func (s *Signal[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.set = false
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// deliver places v into the single-slot channel, dropping the pending value
// if the subscriber has not consumed it yet. Caller holds s.mu, so no other
// sender can race the drain-then-send.
func deliver[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
