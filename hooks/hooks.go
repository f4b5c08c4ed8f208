// Package hooks turns a plain render function into a long-lived, stateful
// component.
//
// A render function receives a *Hooks and calls hook functions on it, always
// in the same order. The position of a call is its identity: the n-th hook
// call of every render addresses the same slot, so state, effects and memoized
// values survive from one render to the next.
//
//	counter := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
//		count := hooks.UseState(h, 0)
//		v := count.Value()
//		hooks.UseEffect(h, func() hooks.Cleanup {
//			log.Printf("count is %d", v)
//			return nil
//		}, v)
//		return node.New("button", node.Options{"onClick": func() { count.Set(v + 1) }}, v)
//	})
//
//	for out, err := range counter.Run(ctx, nil, nil) {
//		...
//	}
//
// A component that uses no hooks yields once. A component that uses state
// keeps yielding, one render per batch of state updates, until it closes
// itself through the function returned by UseClose or its consumer stops.
package hooks

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/push"
)

type hookKind uint8

const (
	kindState hookKind = iota + 1
	kindPush
	kindEffect
	kindCallback
	kindMemo
)

func (k hookKind) String() string {
	switch k {
	case kindState:
		return "state"
	case kindPush:
		return "push"
	case kindEffect:
		return "effect"
	case kindCallback:
		return "callback"
	case kindMemo:
		return "memo"
	}
	return "unknown"
}

// slot is one position in the hook store. Every hook type is a variant.
type slot interface {
	kind() hookKind
}

// Hooks is the execution context handed to a render function. It belongs to
// exactly one component instantiation.
type Hooks struct {
	// slots is written by the driver goroutine only; mu guards those writes
	// against close, which may run on any goroutine.
	mu      sync.Mutex
	slots   []slot
	index   int
	retired []slot

	hooked   bool
	stateful bool
	open     atomic.Bool

	union    *push.Union
	closeFn  func()
	memoSize int
	log      *slog.Logger
}

func newHooks(memoSize int, log *slog.Logger) *Hooks {
	h := &Hooks{
		index:    -1,
		union:    push.NewUnion(),
		memoSize: memoSize,
		log:      log,
	}
	h.open.Store(true)
	h.closeFn = h.close
	return h
}

// Open reports whether the component is still running.
func (h *Hooks) Open() bool {
	return h.open.Load()
}

// UseClose returns a function that closes the component. It is the same
// function on every render, so it is safe to use as a dependency. Closing is
// terminal and idempotent, and may happen from any goroutine.
func (h *Hooks) UseClose() func() {
	return h.closeFn
}

func (h *Hooks) close() {
	if !h.open.CompareAndSwap(true, false) {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.slots {
		if st, ok := s.(stateSlot); ok {
			st.close()
		}
	}
	for _, s := range h.retired {
		if st, ok := s.(stateSlot); ok {
			st.close()
		}
	}
	h.log.Info("close requested")
}

// use returns the slot for the next hook call, creating it when the position
// is new or held by a different kind of hook.
func use[S slot](h *Hooks, kind hookKind, create func() S) (s S, created bool) {
	h.hooked = true
	h.index++
	i := h.index

	if i < len(h.slots) {
		if existing := h.slots[i]; existing != nil && existing.kind() == kind {
			s, ok := existing.(S)
			assert.OK(ok, "hooks: %s hook %d holds %T, not %T", kind, i, existing, s)
			return s, false
		}
	}

	s = create()
	h.mu.Lock()
	if i < len(h.slots) {
		h.retired = append(h.retired, h.slots[i])
		h.log.Debug("hook replaced", "hook", i, "was", h.slots[i].kind(), "now", kind)
		h.slots[i] = s
	} else {
		h.slots = append(h.slots, s)
	}
	h.mu.Unlock()
	return s, true
}
