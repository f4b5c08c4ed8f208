package hooks

import (
	"slices"

	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/compositekey"
	"github.com/delaneyj/hookparty/pkg/deps"
	lru "github.com/hashicorp/golang-lru/v2"
)

type callbackHook struct {
	fn           any
	dependencies []any
}

func (*callbackHook) kind() hookKind { return kindCallback }

// UseCallback returns fn, or the function remembered at this position when
// dependencies have not changed, so its identity is stable across renders.
func UseCallback[F any](h *Hooks, fn F, dependencies ...any) F {
	c, created := use(h, kindCallback, func() *callbackHook {
		return &callbackHook{fn: fn, dependencies: dependencies}
	})
	if !created && !deps.Match(c.dependencies, dependencies) {
		c.fn, c.dependencies = fn, dependencies
	}
	f, ok := c.fn.(F)
	assert.OK(ok, "hooks: callback %d is %T, not %T", h.index, c.fn, f)
	return f
}

// memoEntry keeps its dependencies reachable, so no other value can take
// over one of their addresses while the entry is cached.
type memoEntry[T any] struct {
	dependencies []any
	value        T
}

// memoHook caches values by the identity of their dependency list. The key
// only narrows the lookup: a hit counts once the stored dependencies Match.
// The cache is bounded, so it only keeps the most recently used dependency
// lists alive instead of every list ever seen.
type memoHook struct {
	key    compositekey.Func
	values *lru.Cache[compositekey.Key, any]
}

func (*memoHook) kind() hookKind { return kindMemo }

// UseMemo returns the value fn computed for these dependencies, calling fn
// only on a cache miss.
func UseMemo[T any](h *Hooks, fn func() T, dependencies ...any) T {
	m, _ := use(h, kindMemo, func() *memoHook {
		values, err := lru.New[compositekey.Key, any](h.memoSize)
		assert.OK(err == nil, "hooks: memo cache: %v", err)
		return &memoHook{key: compositekey.New(), values: values}
	})

	k := m.key(dependencies...)
	if cached, ok := m.values.Get(k); ok {
		e, ok := cached.(*memoEntry[T])
		assert.OK(ok, "hooks: memo %d holds %T, not %T", h.index, cached, e)
		if deps.Match(e.dependencies, dependencies) {
			return e.value
		}
		h.log.Debug("memo key collision", "hook", h.index, "key", uint64(k))
	}
	v := fn()
	m.values.Add(k, &memoEntry[T]{
		dependencies: slices.Clone(dependencies),
		value:        v,
	})
	return v
}

// Ref is a mutable cell that keeps its identity across renders.
type Ref[T any] struct {
	Current T
}

// UseRef returns the same *Ref on every render, holding def initially.
func UseRef[T any](h *Hooks, def T) *Ref[T] {
	return UseMemo(h, func() *Ref[T] {
		return &Ref[T]{Current: def}
	})
}
