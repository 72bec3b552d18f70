package store

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// OpStatus is the lifecycle of one asynchronous operation tracked by a
// store. Every operation starts idle, moves to pending when a request is
// issued, and settles as ready or failed when the request resolves.
type OpStatus string

const (
	StatusIdle    OpStatus = "idle"
	StatusPending OpStatus = "pending"
	StatusReady   OpStatus = "ready"
	StatusFailed  OpStatus = "failed"
)

// validate checks inputs before any network call is issued.
var validate = validator.New(validator.WithRequiredStructEnabled())

// broadcaster is the change-subscription mechanism shared by all stores.
// Listeners are invoked after a mutation has been committed, outside the
// store's state lock, so a listener may call back into the store.
type broadcaster struct {
	mu   sync.Mutex
	subs map[int]func()
	next int
}

// Subscribe registers fn to run after every committed state change and
// returns a function that removes the subscription.
func (b *broadcaster) Subscribe(fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func())
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *broadcaster) notify() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
