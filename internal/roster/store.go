// Package roster holds the in-memory roster of people keyed by display name.
package roster

import (
	"sync"

	"github.com/roster-manager/backend/internal/models"
)

// Roster is an ordered name -> person mapping. It is not safe for concurrent
// use on its own; Store wraps it with a lock.
type Roster struct {
	order  []string
	people map[string]models.Person
}

// New returns an empty Roster.
func New() *Roster {
	return &Roster{people: make(map[string]models.Person)}
}

// Put inserts or overwrites a person. An overwritten name keeps its position.
func (r *Roster) Put(name string, p models.Person) {
	if _, ok := r.people[name]; !ok {
		r.order = append(r.order, name)
	}
	r.people[name] = p
}

// Get returns the person stored under name.
func (r *Roster) Get(name string) (models.Person, bool) {
	p, ok := r.people[name]
	return p, ok
}

// Len returns the number of people.
func (r *Roster) Len() int {
	return len(r.order)
}

// Entries returns the people in insertion order.
func (r *Roster) Entries() []models.Entry {
	entries := make([]models.Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, models.Entry{Name: name, Person: r.people[name]})
	}
	return entries
}

func (r *Roster) remove(name string) bool {
	if _, ok := r.people[name]; !ok {
		return false
	}
	delete(r.people, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Store is the process-wide roster. A single RWMutex guards every access so
// that replace, update and delete are each atomic.
type Store struct {
	mu     sync.RWMutex
	roster *Roster
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{roster: New()}
}

// Get retrieves a person by name.
func (s *Store) Get(name string) (models.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Get(name)
}

// Set inserts or overwrites a person.
func (s *Store) Set(name string, p models.Person) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.Put(name, p)
}

// Update applies fn to the stored person under the write lock. It returns
// false without calling fn when name is absent.
func (s *Store) Update(name string, fn func(p *models.Person)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.roster.Get(name)
	if !ok {
		return false
	}
	fn(&p)
	s.roster.people[name] = p
	return true
}

// Delete removes a person, reporting whether it existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.remove(name)
}

// ReplaceAll swaps the whole roster for r. The store takes ownership of r.
func (s *Store) ReplaceAll(r *Roster) {
	if r == nil {
		r = New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster = r
}

// ForEach calls fn for every person in order until fn returns false.
// fn runs against a snapshot, so it may call back into the store.
func (s *Store) ForEach(fn func(name string, p models.Person) bool) {
	for _, e := range s.All() {
		if !fn(e.Name, e.Person) {
			return
		}
	}
}

// All returns a snapshot of every entry in order.
func (s *Store) All() []models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Entries()
}

// Len returns the number of people.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster.Len()
}
