// Package store holds the in-memory mirror of server-confirmed task state.
package store

import (
	"fmt"
	"sync"

	"github.com/dohr-michael/caseflow/internal/task"
)

// Store owns the ordered task collection for one session. Order is
// insertion/fetch order; nothing is sorted. Every entry has completed a
// round trip through the remote gateway: mutations are applied strictly
// after the server confirms them, so no rollback logic exists anywhere.
type Store struct {
	mu     sync.RWMutex
	tasks  []task.Task
	subs   map[int]func()
	nextID int
}

// New creates an empty store.
func New() *Store {
	return &Store{subs: make(map[int]func())}
}

// Load replaces the whole collection. Used only after a list fetch.
func (s *Store) Load(tasks []task.Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks[:0:0], tasks...)
	s.mu.Unlock()
	s.notify()
}

// Insert appends a just-created server record. The caller guarantees the id
// is not already present.
func (s *Store) Insert(t task.Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	s.notify()
}

// Replace overwrites the entry with matching id in place. The id always
// originates from an existing entry, so a miss is an invariant violation
// and panics.
func (s *Store) Replace(id int64, t task.Task) {
	s.mu.Lock()
	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		panic(fmt.Sprintf("store: replace of unknown task id %d", id))
	}
	s.tasks[idx] = t
	s.mu.Unlock()
	s.notify()
}

// Remove filters out the entry with matching id. Removing an absent id is a
// no-op.
func (s *Store) Remove(id int64) {
	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.mu.Unlock()
	s.notify()
}

// Tasks returns a copy of the collection in order.
func (s *Store) Tasks() []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]task.Task(nil), s.tasks...)
}

// Get returns the entry with matching id.
func (s *Store) Get(id int64) (task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Subscribe registers a change listener, called once after every mutation.
// Returns an unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}
