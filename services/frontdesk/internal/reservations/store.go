package reservations

import (
	"slices"
	"sync"
)

// Store is the ordered in-memory collection behind the table. The newest
// reservation sits at index 0.
type Store struct {
	mu    sync.RWMutex
	items []Reservation
}

func NewStore() *Store {
	return &Store{items: []Reservation{}}
}

// Import replaces the contents with records, keeping their order. Records
// repeating an id already imported are dropped.
func (s *Store) Import(records []Reservation) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(records))
	s.items = make([]Reservation, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		s.items = append(s.items, r)
	}
	return len(s.items)
}

func (s *Store) InsertFront(r Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Insert(s.items, 0, r)
}

// Replace overwrites every field but the id. It reports false and leaves
// the store untouched when id is unknown.
func (s *Store) Replace(id string, f Fields) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items[i].apply(f)
	return true
}

// Remove deletes the record with id. Unknown ids are a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

func (s *Store) FindByID(id string) (Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Reservation{}, false
	}
	return s.items[i], true
}

func (s *Store) Has(id string) bool {
	_, ok := s.FindByID(id)
	return ok
}

// All returns a copy of the records in display order.
func (s *Store) All() []Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Query filters a snapshot of the store.
func (s *Store) Query(c Criteria) []Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Query(s.items, c)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(r Reservation) bool {
		return r.ID == id
	})
}
