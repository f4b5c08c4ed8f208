package hooks

import (
	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/push"
)

type pushHook[T any] struct {
	source *push.Source[T]
}

func (*pushHook[T]) kind() hookKind { return kindPush }

// UsePush returns a pushable source held at this position. When an initial
// value is passed it is pushed once, on creation, and retained for
// subscribers that arrive later.
func UsePush[T any](h *Hooks, initial ...T) *push.Source[T] {
	assert.OK(len(initial) <= 1, "hooks: UsePush takes at most one initial value")
	p, _ := use(h, kindPush, func() *pushHook[T] {
		source := push.New[T](push.WithRetain())
		if len(initial) == 1 {
			source.Push(initial[0])
		}
		return &pushHook[T]{source: source}
	})
	return p.source
}

type pushSlot interface {
	end()
}

func (p *pushHook[T]) end() {
	p.source.Close()
}
