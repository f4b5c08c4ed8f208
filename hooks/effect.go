package hooks

import (
	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/deps"
	mapset "github.com/deckarep/golang-set/v2"
)

// Cleanup undoes an effect. It runs before the effect's replacement runs, or
// when the component ends.
type Cleanup func()

// EffectFunc performs a side effect after a render and may return a Cleanup.
type EffectFunc func() Cleanup

type effectRegistration struct {
	fn           EffectFunc
	dependencies []any
	cleanup      Cleanup
}

// effectList only ever holds the registrations that still matter: the newest
// one, and the one before it until that has been cleaned up.
type effectList struct {
	regs []*effectRegistration
}

func (*effectList) kind() hookKind { return kindEffect }

func (l *effectList) prune(finalized mapset.Set[*effectRegistration]) {
	live := l.regs[:0]
	for _, r := range l.regs {
		if !finalized.Contains(r) {
			live = append(live, r)
		}
	}
	clear(l.regs[len(live):])
	l.regs = live
}

// UseEffect schedules fn to run after this render when dependencies differ
// from the previous registration. No dependencies means the effect runs once.
func UseEffect(h *Hooks, fn EffectFunc, dependencies ...any) {
	assert.OK(fn != nil, "hooks: nil effect")
	reg := &effectRegistration{fn: fn, dependencies: dependencies}
	l, created := use(h, kindEffect, func() *effectList {
		return &effectList{regs: []*effectRegistration{reg}}
	})
	if created {
		return
	}
	assert.OK(len(l.regs) > 0, "hooks: effect %d has no registrations", h.index)
	last := l.regs[len(l.regs)-1]
	if deps.Match(last.dependencies, dependencies) {
		return
	}
	l.regs = append(l.regs, reg)
}
