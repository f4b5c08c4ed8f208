package main

import (
	"fmt"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/node"
)

// counter steps its state towards Target, one render per step, and closes
// itself once the state reaches CloseAt. Its button jumps the state by two.
func counter(s scenario, cleanups *[]int) hooks.RenderFunc {
	return func(h *hooks.Hooks, _ node.Options, _ any) any {
		renders := hooks.UseRef(h, 0)
		renders.Current++

		count := hooks.UseState(h, s.Start)
		v := count.Value()

		hooks.UseEffect(h, func() hooks.Cleanup {
			if v < s.Target {
				count.Set(min(v+s.Step, s.Target))
			}
			return func() {
				*cleanups = append(*cleanups, v)
			}
		}, v, count)

		onClick := hooks.UseCallback(h, func() {
			count.Update(func(v int) int { return v + 2 })
		}, count)

		closeFn := h.UseClose()
		hooks.UseEffect(h, func() hooks.Cleanup {
			if v >= s.CloseAt {
				closeFn()
			}
			return nil
		}, v, closeFn)

		label := hooks.UseMemo(h, func() string {
			return fmt.Sprintf("Value %d", v)
		}, v)

		return node.New("button", node.Options{
			"onClick": onClick,
			"renders": renders.Current,
		}, label)
	}
}
