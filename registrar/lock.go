package registrar

import (
	"context"
	"sync"
)

// lockTable hands out one serialization unit per section id. A unit
// is a buffered channel used as a mutex so acquisition can be
// abandoned when the context ends. Units for different sections
// never block each other.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func (lt *lockTable) unit(id string) chan struct{} {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if lt.locks == nil {
		lt.locks = make(map[string]chan struct{})
	}
	ch, ok := lt.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		lt.locks[id] = ch
	}
	return ch
}

// acquire blocks until the section's unit is free or the context is
// done. On success the returned release must be called exactly once.
func (lt *lockTable) acquire(ctx context.Context, id string) (release func(), err error) {
	ch := lt.unit(id)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ErrTimeout
	}
}
