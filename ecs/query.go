package ecs

import (
	"iter"
	"slices"
)

// Query wraps a View with a per-frame cache of matching entities.
// The Scheduler calls Execute before each system runs; systems then read the
// cache through Iter, Values, Len or Single.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the entity and component caches for this frame.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.cachedEntities = q.cachedEntities[:0]
	q.cachedComponents = q.cachedComponents[:0]
	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

// refreshArchetypes rescans matching archetypes when new ones were created.
// Archetypes are never removed, so a count change is enough to detect them.
func (q *Query[T]) refreshArchetypes() {
	count := len(q.storage.archetypes)
	if count == q.lastArchetypeCount && q.cachedArchetypes != nil {
		return
	}
	q.lastArchetypeCount = count

	q.cachedArchetypes = q.cachedArchetypes[:0]
	for _, archetype := range q.storage.archetypes {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
	slices.SortFunc(q.cachedArchetypes, func(a, b *Archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("Iter")
	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted("Values")
	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities matched at the last Execute.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedEntities)
}

// Single returns the only matching entity. It reports false when the query
// matched zero or several entities.
func (q *Query[T]) Single() (EntityId, T, bool) {
	q.mustBeExecuted("Single")
	if len(q.cachedEntities) != 1 {
		var zero T
		return 0, zero, false
	}
	return q.cachedEntities[0], q.cachedComponents[0], true
}
