package round

import (
	"slices"
	"sync"
)

// Observers fans state snapshots out to subscribers. Session controllers
// publish after every accepted action, outside their own lock.
type Observers[S any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(S)
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observers[S]) Subscribe(fn func(S)) (cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.subs == nil {
		o.subs = make(map[int]func(S))
	}
	id := o.next
	o.next++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}

// Publish calls every subscriber with snap, in subscription order.
func (o *Observers[S]) Publish(snap S) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.subs))
	for id := range o.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(S), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, o.subs[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
