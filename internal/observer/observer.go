// Package observer holds subscriber lists for the observable values exposed
// to the rendering side.
package observer

import (
	"slices"
	"sync"
)

// List is a set of callbacks notified with values of type T. The zero value
// is ready to use.
type List[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(T)
}

// Subscribe registers fn and returns a function that removes it again.
func (l *List[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.subs == nil {
		l.subs = make(map[int]func(T))
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
		})
	}
}

// Notify calls every subscriber with v. Callbacks run outside the lock, in
// subscription order, so they may subscribe or unsubscribe themselves.
func (l *List[T]) Notify(v T) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.subs))
	for id := range l.subs {
		ids = append(ids, id)
	}
	fns := make([]func(T), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, l.subs[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
