// Package repository provides the thread-safe in-memory stores behind every admin resource.
package repository

import (
	"sync"

	"github.com/pkg/errors"

	"loyalty-admin/models"
	"loyalty-admin/utils"
)

// Entity is implemented by every stored model.
// WithID returns a copy of the entity carrying the given id.
type Entity[T any] interface {
	EntityID() int64
	WithID(id int64) T
	SearchFields() []string
}

// cloner is implemented by entities holding slices or pointers that must not be shared.
type cloner[T any] interface {
	Clone() T
}

// Store is a generic, thread-safe, in-memory collection of entities keyed by integer id.
// Writers are linearized; readers always receive copies.
type Store[T Entity[T]] struct {
	mu     sync.RWMutex
	name   string
	items  map[int64]T
	order  []int64 // insertion order for deterministic listing
	lastID int64   // highest id ever issued, ids are never reused
}

// NewStore creates an empty Store; name is used in error messages (e.g. "customer").
func NewStore[T Entity[T]](name string) *Store[T] {
	return &Store[T]{
		name:  name,
		items: make(map[int64]T),
		order: make([]int64, 0),
	}
}

// Name returns the entity name of the store.
func (s *Store[T]) Name() string {
	return s.name
}

func (s *Store[T]) copyOf(item T) T {
	if c, ok := any(item).(cloner[T]); ok {
		return c.Clone()
	}
	return item
}

func (s *Store[T]) notFound(id int64) error {
	return errors.Wrapf(models.ErrNotFound, "%s %d", s.name, id)
}

// Add assigns the next id to item, appends it and returns the stored copy.
// The id is max(existing ids, highest id ever issued) + 1, so 1 for a fresh store.
func (s *Store[T]) Add(item T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	stored := s.copyOf(item).WithID(s.lastID)
	s.items[stored.EntityID()] = stored
	s.order = append(s.order, stored.EntityID())
	return s.copyOf(stored)
}

// Insert stores item under its own id. It is used to seed fixed data.
func (s *Store[T]) Insert(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := item.EntityID()
	if id <= 0 {
		var zero T
		return zero, models.NewValidationError("id", "%s id must be positive, got %d", s.name, id)
	}
	if _, exists := s.items[id]; exists {
		var zero T
		return zero, models.NewValidationError("id", "%s %d already exists", s.name, id)
	}
	stored := s.copyOf(item)
	s.items[id] = stored
	s.order = append(s.order, id)
	if id > s.lastID {
		s.lastID = id
	}
	return s.copyOf(stored), nil
}

// Get retrieves a copy of the entity with the given id.
func (s *Store[T]) Get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}
	return s.copyOf(item), nil
}

// Update replaces the entity with the result of mutate, applied under the write lock.
// An error from mutate aborts the update and leaves the entity unchanged.
// The id and the position in the listing order are preserved.
func (s *Store[T]) Update(id int64, mutate func(current T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	current, ok := s.items[id]
	if !ok {
		return zero, s.notFound(id)
	}
	next, err := mutate(s.copyOf(current))
	if err != nil {
		return zero, err
	}
	next = s.copyOf(next).WithID(id)
	s.items[id] = next
	return s.copyOf(next), nil
}

// Remove deletes the entity with the given id.
func (s *Store[T]) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return s.notFound(id)
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns, in insertion order, the entities whose searchable fields contain filter
// ignoring case. An empty filter returns everything.
func (s *Store[T]) List(filter string) []T {
	return s.Filter(func(item T) bool {
		return utils.MatchesAny(filter, item.SearchFields()...)
	})
}

// Filter returns the entities that match the predicate, in insertion order.
func (s *Store[T]) Filter(predicate func(item T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]T, 0)
	for _, id := range s.order {
		if item := s.items[id]; predicate(item) {
			result = append(result, s.copyOf(item))
		}
	}
	return result
}

// All returns every entity in insertion order.
func (s *Store[T]) All() []T {
	return s.Filter(func(T) bool { return true })
}

// Exists reports whether any entity matches the predicate.
func (s *Store[T]) Exists(predicate func(item T) bool) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if predicate(s.items[id]) {
			return true
		}
	}
	return false
}

// Count returns the number of entities in the store.
func (s *Store[T]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
