package hooks

import (
	"context"
	"iter"

	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/push"
)

// Action is a pending state update: either a replacement value or a
// transform of the current value.
type Action[T any] struct {
	value     T
	transform func(T) T
}

// Replace returns an Action that sets the state to v.
func Replace[T any](v T) Action[T] {
	return Action[T]{value: v}
}

// Transform returns an Action that sets the state to fn(current).
func Transform[T any](fn func(T) T) Action[T] {
	return Action[T]{transform: fn}
}

// Apply computes the value that follows current.
func (a Action[T]) Apply(current T) T {
	if a.transform != nil {
		return a.transform(current)
	}
	return a.value
}

type stateSlot interface {
	commit(input any)
	close()
}

// State is a value held across renders. Updates are queued and committed in
// a batch before the next render, so Value keeps returning the committed
// value for the rest of the current render.
type State[T any] struct {
	value  T
	source *push.Source[Action[T]]
	setter func(Action[T])
}

func (*State[T]) kind() hookKind { return kindState }

// UseState returns the state held at this position, seeded with def on the
// first render.
func UseState[T any](h *Hooks, def T) *State[T] {
	return UseStateFunc(h, func() T { return def })
}

// UseStateFunc is UseState with a lazily computed seed. init only runs on the
// first render.
func UseStateFunc[T any](h *Hooks, init func() T) *State[T] {
	h.stateful = true
	s, _ := use(h, kindState, func() *State[T] {
		s := &State[T]{
			value:  init(),
			source: push.New[Action[T]](),
		}
		s.setter = s.Dispatch
		push.Join(h.union, stateSlot(s), s.source.Subscribe())
		if !h.Open() {
			s.source.Close()
		}
		return s
	})
	return s
}

// Value returns the committed value. Only the render function and the
// effects it registers should call it.
func (s *State[T]) Value() T {
	return s.value
}

// Set queues v as the next value.
func (s *State[T]) Set(v T) {
	s.Dispatch(Replace(v))
}

// Update queues fn, which receives the value committed just before it.
func (s *State[T]) Update(fn func(T) T) {
	s.Dispatch(Transform(fn))
}

// Dispatch queues a. It does nothing once the component has closed. It is
// safe to call from any goroutine.
func (s *State[T]) Dispatch(a Action[T]) {
	s.source.Push(a)
}

// Setter returns the dispatch function. It is the same function value
// throughout the state's life.
func (s *State[T]) Setter() func(Action[T]) {
	return s.setter
}

// Get returns the committed value together with the dispatch function.
func (s *State[T]) Get() (T, func(Action[T])) {
	return s.value, s.setter
}

// Updates yields every action dispatched from now on until the component
// closes or ctx is done.
func (s *State[T]) Updates(ctx context.Context) iter.Seq[Action[T]] {
	return s.source.All(ctx)
}

func (s *State[T]) commit(input any) {
	a, ok := input.(Action[T])
	assert.OK(ok, "hooks: state update is %T, want %T", input, a)
	s.value = a.Apply(s.value)
}

func (s *State[T]) close() {
	s.source.Close()
}
