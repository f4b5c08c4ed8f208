package hooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/deps"
	"github.com/delaneyj/hookparty/pkg/node"
	testify "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainRenderYieldsOnce(t *testing.T) {
	calls := 0
	c := hooks.New(func(h *hooks.Hooks, options node.Options, input any) any {
		calls++
		return node.New("p", options, input)
	}, quiet)

	var outs []any
	for out, err := range c.Run(testContext(t), node.Options{"id": "x"}, "hello") {
		require.NoError(t, err)
		outs = append(outs, out)
	}

	require.Len(t, outs, 1)
	testify.Equal(t, 1, calls)
	testify.Equal(t, `<p id="x">hello</p>`, node.Markup(outs[0].(*node.Node)))
}

func TestCounterScenario(t *testing.T) {
	var cleanups []int
	var clicks []func()

	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		count := hooks.UseState(h, 0)
		v := count.Value()

		hooks.UseEffect(h, func() hooks.Cleanup {
			if v < 3 {
				count.Set(v + 1)
			}
			return func() {
				cleanups = append(cleanups, v)
			}
		}, v, count)

		onClick := hooks.UseCallback(h, func() {
			count.Update(func(v int) int { return v + 2 })
		}, count)
		clicks = append(clicks, onClick)

		closeFn := h.UseClose()
		hooks.UseEffect(h, func() hooks.Cleanup {
			if v >= 3 {
				closeFn()
			}
			return nil
		}, v, closeFn)

		return v
	}, quiet)

	outs := collect(t, c)
	testify.Equal(t, []any{0, 1, 2, 3}, outs)
	testify.Equal(t, []int{0, 1, 2, 3}, cleanups)

	require.Len(t, clicks, 4)
	for _, click := range clicks[1:] {
		testify.True(t, deps.Equal(clicks[0], click))
	}
}

func TestCallbackDrivesState(t *testing.T) {
	type view struct {
		count   int
		onClick func()
	}

	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		count := hooks.UseState(h, 0)
		onClick := hooks.UseCallback(h, func() {
			count.Update(func(v int) int { return v + 2 })
		}, count)
		closeFn := h.UseClose()
		hooks.UseEffect(h, func() hooks.Cleanup {
			if count.Value() >= 4 {
				closeFn()
			}
			return nil
		}, count.Value())
		return view{count: count.Value(), onClick: onClick}
	}, quiet)

	var seen []int
	for out, err := range c.Run(testContext(t), nil, nil) {
		require.NoError(t, err)
		v := out.(view)
		seen = append(seen, v.count)
		v.onClick()
	}
	testify.Equal(t, []int{0, 2, 4}, seen)
}

func TestSimultaneousUpdatesCommitInOneRender(t *testing.T) {
	type view struct {
		a, b    *hooks.State[int]
		av, bv  int
		closeFn func()
	}

	renders := 0
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		renders++
		a := hooks.UseState(h, 0)
		b := hooks.UseState(h, 0)
		return view{a: a, b: b, av: a.Value(), bv: b.Value(), closeFn: h.UseClose()}
	}, quiet)

	var seen [][2]int
	for out, err := range c.Run(testContext(t), nil, nil) {
		require.NoError(t, err)
		v := out.(view)
		seen = append(seen, [2]int{v.av, v.bv})
		if v.av == 0 {
			v.a.Set(1)
			v.b.Set(2)
			continue
		}
		v.closeFn()
	}

	testify.Equal(t, [][2]int{{0, 0}, {1, 2}}, seen)
	testify.Equal(t, 2, renders)
}

func TestSetterDuringRenderSeedsNextRender(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseState(h, 0)
		closeFn := h.UseClose()
		switch s.Value() {
		case 0:
			s.Set(5)
		case 5:
			s.Update(func(v int) int { return v + 1 })
			s.Update(func(v int) int { return v * 10 })
		default:
			closeFn()
		}
		return s.Value()
	}, quiet)

	// the render that closes is never yielded.
	testify.Equal(t, []any{0, 5}, collect(t, c))
}

func TestTransformSeesCommittedValue(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseState(h, 1)
		closeFn := h.UseClose()
		hooks.UseEffect(h, func() hooks.Cleanup {
			switch s.Value() {
			case 1:
				s.Update(func(v int) int { return v + 1 })
				s.Update(func(v int) int { return v * 10 })
			default:
				closeFn()
			}
			return nil
		}, s.Value())
		return s.Value()
	}, quiet)

	testify.Equal(t, []any{1, 20}, collect(t, c))
}

func TestUseStateFuncInitRunsOnce(t *testing.T) {
	inits := 0
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseStateFunc(h, func() string {
			inits++
			return "a"
		})
		closeFn := h.UseClose()
		hooks.UseEffect(h, func() hooks.Cleanup {
			if s.Value() == "a" {
				s.Set("b")
			} else {
				closeFn()
			}
			return nil
		}, s.Value())
		return s.Value()
	}, quiet)

	testify.Equal(t, []any{"a", "b"}, collect(t, c))
	testify.Equal(t, 1, inits)
}

func TestStatelessHookedComponentYieldsOnceAndCleansUp(t *testing.T) {
	var events []string
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		hooks.UseEffect(h, func() hooks.Cleanup {
			events = append(events, "run")
			return func() { events = append(events, "cleanup") }
		})
		return "static"
	}, quiet)

	testify.Equal(t, []any{"static"}, collect(t, c))
	testify.Equal(t, []string{"run", "cleanup"}, events)
}

func TestCloseDuringRenderDoesNotYield(t *testing.T) {
	var events []string
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseState(h, 0)
		hooks.UseEffect(h, func() hooks.Cleanup {
			events = append(events, "run")
			s.Set(1)
			return func() { events = append(events, "cleanup") }
		})
		if s.Value() == 1 {
			h.UseClose()()
		}
		return s.Value()
	}, quiet)

	testify.Equal(t, []any{0}, collect(t, c))
	testify.Equal(t, []string{"run", "cleanup"}, events)
}

func TestBreakClosesAndFinalizes(t *testing.T) {
	var events []string
	var state *hooks.State[int]
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		state = hooks.UseState(h, 0)
		hooks.UseEffect(h, func() hooks.Cleanup {
			return func() { events = append(events, "cleanup") }
		})
		return state.Value()
	}, quiet)

	for range c.Run(testContext(t), nil, nil) {
		break
	}
	testify.Equal(t, []string{"cleanup"}, events)

	// setters held after the component ended are ignored.
	testify.NotPanics(t, func() { state.Set(9) })
	testify.Equal(t, 0, state.Value())
}

func TestContextCancelEndsWithError(t *testing.T) {
	cleaned := false
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseState(h, 0)
		hooks.UseEffect(h, func() hooks.Cleanup {
			return func() { cleaned = true }
		})
		return s.Value()
	}, quiet)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var outs []any
	var errs []error
	for out, err := range c.Run(ctx, nil, nil) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outs = append(outs, out)
		cancel()
	}

	testify.Equal(t, []any{0}, outs)
	require.Len(t, errs, 1)
	testify.ErrorIs(t, errs[0], context.Canceled)
	testify.True(t, cleaned)
}

func TestSetterFromAnotherGoroutine(t *testing.T) {
	type view struct {
		value   int
		state   *hooks.State[int]
		closeFn func()
	}
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		s := hooks.UseState(h, 0)
		return view{value: s.Value(), state: s, closeFn: h.UseClose()}
	}, quiet)

	var seen []int
	for out, err := range c.Run(testContext(t), nil, nil) {
		require.NoError(t, err)
		v := out.(view)
		seen = append(seen, v.value)
		switch v.value {
		case 0:
			go func() {
				time.Sleep(5 * time.Millisecond)
				v.state.Set(7)
			}()
		default:
			go v.closeFn()
		}
	}
	testify.Equal(t, []int{0, 7}, seen)
}

func TestRenderReturningChannelIsFatal(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		return make(chan int)
	}, quiet)

	defer func() {
		v := recover()
		require.NotNil(t, v)
		testify.True(t, assert.Is(v))
	}()
	for range c.Run(testContext(t), nil, nil) {
		t.Fatal("no output expected")
	}
}

func TestRenderReturningSequenceIsFatal(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		return func(yield func(int) bool) {}
	}, quiet)

	testify.Panics(t, func() {
		for range c.Run(testContext(t), nil, nil) {
		}
	})
}

func TestInstantiationsDoNotShareState(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		ref := hooks.UseRef(h, 0)
		ref.Current++
		return ref.Current
	}, quiet)

	testify.Equal(t, []any{1}, collect(t, c))
	testify.Equal(t, []any{1}, collect(t, c))
}

func TestComponentName(t *testing.T) {
	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any { return nil }, hooks.WithName("Counter"), quiet)
	testify.Equal(t, "Counter", c.Name())
	testify.Equal(t, "Counter", node.Name(node.New(c, nil)))
}

func TestNewRejectsBadOptions(t *testing.T) {
	testify.Panics(t, func() { hooks.New(nil) })
	testify.Panics(t, func() {
		hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any { return nil }, hooks.WithMemoCacheSize(0))
	})
}
