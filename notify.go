package satchel

import (
	"slices"
	"sync"
)

type listener struct {
	id int
	fn func()
}

// Notifier is the change-notification point owned by each collection. Events
// carry no payload beyond "this collection changed"; consumers re-query
// instead of trusting a delta.
type Notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener
}

// Subscribe registers fn and returns its unsubscribe function. Unsubscribing
// twice is harmless.
func (n *Notifier) Subscribe(fn func()) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listener{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		n.listeners = slices.DeleteFunc(n.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

// Notify synchronously invokes every listener registered at the moment of
// the call, in registration order. The list is snapshotted before any
// listener runs: a listener added during notification is not invoked in the
// same pass, and an unsubscribe during notification takes effect on the
// next pass.
func (n *Notifier) Notify() {
	n.mu.Lock()
	snapshot := slices.Clone(n.listeners)
	n.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}
