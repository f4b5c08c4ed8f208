package hooks

import (
	"context"
	"iter"
	"log/slog"
	"reflect"

	"github.com/delaneyj/hookparty/pkg/assert"
	"github.com/delaneyj/hookparty/pkg/node"
	"github.com/delaneyj/hookparty/pkg/push"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

// RenderFunc produces a component's output for the current hook state. It
// must return an immediate value: never a channel and never a sequence.
type RenderFunc func(h *Hooks, options node.Options, input any) any

// DefaultMemoCacheSize is how many dependency identities each UseMemo call
// site remembers unless WithMemoCacheSize says otherwise.
const DefaultMemoCacheSize = 64

// Component drives a RenderFunc. A Component is a template: every Run is a
// separate instantiation with its own hook store.
type Component struct {
	render        RenderFunc
	name          string
	logger        *slog.Logger
	memoCacheSize int
}

// Option configures a Component.
type Option func(*Component)

// WithLogger sets the logger the driver reports renders, commits and effects
// to. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Component) {
		c.logger = logger
	}
}

// WithName names the component in logs and markup.
func WithName(name string) Option {
	return func(c *Component) {
		c.name = name
	}
}

// WithMemoCacheSize bounds every UseMemo cache of the component.
func WithMemoCacheSize(n int) Option {
	return func(c *Component) {
		c.memoCacheSize = n
	}
}

// New wraps render into a Component.
func New(render RenderFunc, opts ...Option) *Component {
	assert.OK(render != nil, "hooks: nil render function")
	c := &Component{
		render:        render,
		name:          "component",
		memoCacheSize: DefaultMemoCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	assert.OK(c.memoCacheSize > 0, "hooks: memo cache size must be positive, got %d", c.memoCacheSize)
	return c
}

// Name returns the component's name.
func (c *Component) Name() string {
	return c.name
}

// Run instantiates the component and returns its outputs.
//
// A component that calls no hooks yields once. Otherwise every render is
// yielded, and a stateful component renders again after each batch of state
// updates until it is closed. Stopping the iteration closes the component.
// When ctx is done the component closes and the last pair carries ctx.Err().
// Every pending effect cleanup runs before the sequence ends.
//
// A render function that breaks its contract panics with an *assert.Error
// in the goroutine ranging over the sequence.
func (c *Component) Run(ctx context.Context, options node.Options, input any) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		log := c.logger.With("component", c.name, "instance", uuid.NewString())
		d := &driver{
			render:    c.render,
			hooks:     newHooks(c.memoCacheSize, log),
			options:   options,
			input:     input,
			log:       log,
			ran:       mapset.NewThreadUnsafeSet[*effectRegistration](),
			finalized: mapset.NewThreadUnsafeSet[*effectRegistration](),
		}
		d.run(ctx, yield)
	}
}

type driver struct {
	render  RenderFunc
	hooks   *Hooks
	options node.Options
	input   any
	log     *slog.Logger
	renders int

	ran       mapset.Set[*effectRegistration]
	finalized mapset.Set[*effectRegistration]
}

func (d *driver) run(ctx context.Context, yield func(any, error) bool) {
	h := d.hooks
	for {
		out := d.call()

		if !h.Open() {
			d.log.Debug("closed during render", "render", d.renders)
			d.finalize()
			return
		}

		if !h.hooked {
			yield(out, nil)
			return
		}

		d.runEffects()

		if !yield(out, nil) {
			h.close()
			d.finalize()
			return
		}

		if !h.stateful {
			d.finalize()
			return
		}

		snapshot, ok, err := h.union.Next(ctx)
		if err != nil {
			h.close()
			d.finalize()
			yield(nil, err)
			return
		}
		if !ok {
			break
		}
		d.commit(snapshot)
		if !h.Open() {
			break
		}
	}
	d.finalize()
}

func (d *driver) call() any {
	d.hooks.index = -1
	out := d.render(d.hooks, d.options, d.input)
	d.renders++
	d.retire()
	assertImmediate(out)
	d.log.Debug("rendered",
		"render", d.renders,
		"hooks", d.hooks.index+1,
		"stateful", d.hooks.stateful,
	)
	return out
}

func assertImmediate(out any) {
	if out == nil {
		return
	}
	t := reflect.TypeOf(out)
	assert.OK(t.Kind() != reflect.Chan, "hooks: render returned %s, want an immediate value", t)
	assert.OK(!isSequence(t), "hooks: render returned sequence %s, want an immediate value", t)
}

// isSequence matches the shape of iter.Seq and iter.Seq2.
func isSequence(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

func (d *driver) commit(snapshot push.Snapshot) {
	for _, item := range snapshot {
		st, ok := item.Tag.(stateSlot)
		assert.OK(ok, "hooks: update tagged %T, want a state", item.Tag)
		st.commit(item.Value)
	}
	d.log.Debug("committed", "updates", len(snapshot))
}

func (d *driver) runEffects() {
	for i, s := range d.hooks.slots {
		l, ok := s.(*effectList)
		if !ok {
			continue
		}
		assert.OK(len(l.regs) > 0, "hooks: effect %d has no registrations", i)

		current := l.regs[len(l.regs)-1]
		if d.ran.Contains(current) {
			continue
		}
		d.ran.Add(current)

		for _, previous := range l.regs[:len(l.regs)-1] {
			d.finalizeRegistration(i, previous)
		}

		current.cleanup = current.fn()
		d.log.Debug("effect ran", "hook", i, "cleanup", current.cleanup != nil)

		l.prune(d.finalized)
	}
}

func (d *driver) finalizeRegistration(i int, r *effectRegistration) {
	if d.finalized.Contains(r) {
		return
	}
	d.finalized.Add(r)
	if r.cleanup != nil {
		r.cleanup()
		d.log.Debug("effect cleaned up", "hook", i)
	}
}

// retire ends the slots a render displaced by calling a different kind of
// hook at their position.
func (d *driver) retire() {
	h := d.hooks
	h.mu.Lock()
	retired := h.retired
	h.retired = nil
	h.mu.Unlock()

	for _, s := range retired {
		switch s := s.(type) {
		case *effectList:
			for _, r := range s.regs {
				d.finalizeRegistration(-1, r)
			}
		case stateSlot:
			s.close()
		case pushSlot:
			s.end()
		}
	}
}

func (d *driver) finalize() {
	for i, s := range d.hooks.slots {
		switch s := s.(type) {
		case *effectList:
			for _, r := range s.regs {
				d.finalizeRegistration(i, r)
			}
			s.prune(d.finalized)
		case pushSlot:
			s.end()
		}
	}
	d.log.Debug("finalized", "renders", d.renders)
}
