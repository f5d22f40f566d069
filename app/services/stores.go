// Package services holds the example application's shared services.
package services

import (
	"fmt"
	"sync"
	"time"
)

// Clock tells the time. Tests replace Now.
type Clock struct {
	Now func() time.Time
}

// NewClock returns a Clock backed by time.Now.
func NewClock() *Clock {
	return &Clock{Now: time.Now}
}

// ── Counters ──────────────────────────────────────────────────────────────────

// CounterStore keeps one count per counter key, shared by every counter
// controller on the page.
type CounterStore struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewCounterStore() *CounterStore {
	return &CounterStore{counts: make(map[string]int)}
}

// Add adds delta to key and returns the new count.
func (s *CounterStore) Add(key string, delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[key] += delta
	return s.counts[key]
}

// Get returns the count for key.
func (s *CounterStore) Get(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Total returns the sum of all counts.
func (s *CounterStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// ── Todos ─────────────────────────────────────────────────────────────────────

// Todo is one item of a list.
type Todo struct {
	ID      string
	Title   string
	Done    bool
	Created time.Time
}

// TodoStore keeps todo items in insertion order.
type TodoStore struct {
	clock *Clock

	mu    sync.Mutex
	seq   int
	items []*Todo
}

func NewTodoStore(clock *Clock) *TodoStore {
	return &TodoStore{clock: clock}
}

// Add appends a new item and returns it.
func (s *TodoStore) Add(title string) *Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &Todo{ID: fmt.Sprintf("todo-%d", s.seq), Title: title, Created: s.clock.Now()}
	s.items = append(s.items, t)
	return t
}

// Toggle flips the done flag of id and reports the new state.
func (s *TodoStore) Toggle(id string) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			t.Done = !t.Done
			return t.Done, true
		}
	}
	return false, false
}

// Remove deletes id and reports whether it existed.
func (s *TodoStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the items.
func (s *TodoStore) Items() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Todo, len(s.items))
	for i, t := range s.items {
		out[i] = *t
	}
	return out
}
