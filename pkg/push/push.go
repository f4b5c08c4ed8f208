// Package push provides a pushable, closable, multi-subscriber value source.
//
// A [Source] fans every pushed value out to each of its subscriptions. Each
// [Subscription] buffers values in an unbounded FIFO queue, so pushing never
// blocks and a slow reader never loses values. Closing a source is terminal:
// later pushes are ignored and every subscription ends once drained.
//
// A [Union] merges many subscriptions and hands back everything available in
// one [Snapshot], which is how a hooked component commits several state
// updates in a single render.
package push

import (
	"context"
	"iter"
	"sync"
)

// Option configures a [Source].
type Option func(*config)

type config struct {
	retain bool
}

// WithRetain makes a source remember its last pushed value and deliver it
// first to subscriptions created afterwards.
func WithRetain() Option {
	return func(c *config) {
		c.retain = true
	}
}

// Source is a pushable value source. It is safe for concurrent use.
type Source[T any] struct {
	mu      sync.Mutex
	subs    []*Subscription[T]
	closed  bool
	retain  bool
	last    T
	hasLast bool
}

// New creates an open [Source].
func New[T any](opts ...Option) *Source[T] {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Source[T]{retain: cfg.retain}
}

// Push delivers v to every subscription. It reports false, and does nothing,
// once the source is closed.
func (s *Source[T]) Push(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.last, s.hasLast = v, true
	for _, sub := range s.subs {
		sub.enqueue(v)
	}
	return true
}

// Close ends the source and all of its subscriptions. Values already queued
// in a subscription are still delivered. Close is idempotent.
func (s *Source[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.end()
	}
}

// Open reports whether the source still accepts values.
func (s *Source[T]) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

// Last returns the most recently pushed value.
func (s *Source[T]) Last() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Subscribe starts a subscription that receives every value pushed from now
// on, preceded by the last value when the source retains it.
func (s *Source[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{
		src:   s,
		ready: make(chan struct{}, 1),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retain && s.hasLast {
		sub.enqueue(s.last)
	}
	if s.closed {
		sub.end()
		return sub
	}
	s.subs = append(s.subs, sub)
	return sub
}

// All subscribes and yields values until the source closes, ctx is done, or
// the caller stops iterating.
func (s *Source[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		sub := s.Subscribe()
		defer sub.Unsubscribe()
		for v := range sub.All(ctx) {
			if !yield(v) {
				return
			}
		}
	}
}

func (s *Source[T]) remove(sub *Subscription[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Subscription is one reader's view of a [Source].
type Subscription[T any] struct {
	src *Source[T]

	mu      sync.Mutex
	queue   []T
	closed  bool
	ready   chan struct{}
	watches []chan<- struct{}
}

func (sub *Subscription[T]) enqueue(v T) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.queue = append(sub.queue, v)
	watches := sub.watches
	sub.mu.Unlock()
	sub.notify(watches)
}

func (sub *Subscription[T]) end() {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.closed = true
	watches := sub.watches
	sub.mu.Unlock()
	sub.notify(watches)
}

func (sub *Subscription[T]) notify(watches []chan<- struct{}) {
	signal(sub.ready)
	for _, w := range watches {
		signal(w)
	}
}

func (sub *Subscription[T]) watch(w chan<- struct{}) {
	sub.mu.Lock()
	sub.watches = append(sub.watches, w)
	sub.mu.Unlock()
}

func signal(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever a value is queued or the subscription ends.
func (sub *Subscription[T]) Ready() <-chan struct{} {
	return sub.ready
}

// Next blocks until a value is available and returns it. ok is false once the
// subscription has ended and its queue is empty.
func (sub *Subscription[T]) Next(ctx context.Context) (v T, ok bool, err error) {
	for {
		sub.mu.Lock()
		if len(sub.queue) > 0 {
			v = sub.queue[0]
			var zero T
			sub.queue[0] = zero
			sub.queue = sub.queue[1:]
			sub.mu.Unlock()
			return v, true, nil
		}
		closed := sub.closed
		sub.mu.Unlock()
		if closed {
			return v, false, nil
		}

		select {
		case <-sub.ready:
		case <-ctx.Done():
			return v, false, ctx.Err()
		}
	}
}

// Drain returns every queued value without blocking. open is false once the
// subscription has ended, after which no further values will arrive.
func (sub *Subscription[T]) Drain() (values []T, open bool) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	values = sub.queue
	sub.queue = nil
	return values, !sub.closed
}

// All yields values until the subscription ends, ctx is done, or the caller
// stops iterating.
func (sub *Subscription[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok, err := sub.Next(ctx)
			if err != nil || !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Unsubscribe detaches the subscription from its source and ends it.
func (sub *Subscription[T]) Unsubscribe() {
	sub.src.remove(sub)
	sub.end()
}
