package library

import (
	"sync"

	"github.com/google/uuid"

	libSvc "libris/internal/domain/services/library"
)

type subscriber struct {
	id string
	fn func(libSvc.Change)
}

// notifier delivers changes to registered observers synchronously and in
// registration order, after the triggering mutation has completed. It is
// always invoked outside the orchestrator's state lock so observers may
// read engine state from inside a callback.
type notifier struct {
	mu   sync.RWMutex
	subs []subscriber
}

func (n *notifier) subscribe(fn func(libSvc.Change)) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := uuid.NewString()
	n.subs = append(n.subs, subscriber{id: id, fn: fn})
	return id
}

func (n *notifier) unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

func (n *notifier) publish(change libSvc.Change) {
	n.mu.RLock()
	snapshot := make([]subscriber, len(n.subs))
	copy(snapshot, n.subs)
	n.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(change)
	}
}
