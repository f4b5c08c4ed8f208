package push

import (
	"context"
	"sync"
)

// Item is one value taken from a [Union] member, labelled with the tag the
// member joined with.
type Item struct {
	Tag   any
	Value any
}

// Snapshot is every value that was available across a [Union] at the moment
// it was collected, ordered by join order and then by push order.
type Snapshot []Item

// Union waits on many subscriptions at once and returns whatever is ready as
// a single batch instead of one value per wake.
type Union struct {
	mu      sync.Mutex
	wake    chan struct{}
	members []*unionMember
}

type unionMember struct {
	tag   any
	drain func() ([]any, bool)
}

// NewUnion creates an empty [Union].
func NewUnion() *Union {
	return &Union{wake: make(chan struct{}, 1)}
}

// Join adds sub to u under tag. Values already queued in sub are part of the
// next snapshot.
func Join[T any](u *Union, tag any, sub *Subscription[T]) {
	sub.watch(u.wake)

	u.mu.Lock()
	u.members = append(u.members, &unionMember{
		tag: tag,
		drain: func() ([]any, bool) {
			values, open := sub.Drain()
			out := make([]any, len(values))
			for i, v := range values {
				out[i] = v
			}
			return out, open
		},
	})
	u.mu.Unlock()

	signal(u.wake)
}

// Len returns the number of members that have not ended yet.
func (u *Union) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.members)
}

// Next blocks until at least one member has values, then drains every
// member. ok is false once all members have ended and nothing is left.
func (u *Union) Next(ctx context.Context) (snapshot Snapshot, ok bool, err error) {
	for {
		snapshot, live := u.collect()
		if len(snapshot) > 0 {
			return snapshot, true, nil
		}
		if live == 0 {
			return nil, false, nil
		}

		select {
		case <-u.wake:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
}

func (u *Union) collect() (Snapshot, int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	var snapshot Snapshot
	live := u.members[:0]
	for _, m := range u.members {
		values, open := m.drain()
		for _, v := range values {
			snapshot = append(snapshot, Item{Tag: m.tag, Value: v})
		}
		if open {
			live = append(live, m)
		}
	}
	clear(u.members[len(live):])
	u.members = live
	return snapshot, len(live)
}
