package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly the same set of component types.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentColumn
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	// generations[i] is bumped whenever slot i is freed.
	generations []uint8
}

// NewArchetype creates an archetype for the sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for idx, typ := range types {
		a.columns[idx] = registry.newColumn(typ)
	}
	return a
}

// Spawn appends one entity built from components and returns its id.
// All columns allocate in lockstep, so any column's index is the entity index.
func (a *Archetype) Spawn(components []any) EntityId {
	index := -1
	for _, comp := range components {
		col := a.columnIndex(componentType(comp))
		if col < 0 {
			continue
		}
		index = a.columns[col].Append(comp)
	}
	return a.entityId(index)
}

func (a *Archetype) generation(index int) uint8 {
	if index < 0 || index >= len(a.generations) {
		return 0
	}
	return a.generations[index]
}

// entityId is the id of whatever currently occupies the slot.
func (a *Archetype) entityId(index int) EntityId {
	return NewEntityId(a.id, a.generation(index), uint32(index))
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the entity's component, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	col := a.columnIndex(compType)
	if col < 0 {
		return nil
	}
	return a.columns[col].Get(int(entityIndex))
}

// Contains reports whether the index holds a live entity.
func (a *Archetype) Contains(entityIndex uint32) bool {
	if len(a.columns) == 0 {
		return false
	}
	return a.columns[0].Has(int(entityIndex))
}

// Live reports whether id names the entity currently in its slot.
func (a *Archetype) Live(id EntityId) bool {
	return a.Contains(id.Index()) && a.generation(int(id.Index())) == id.Generation()
}

// Delete frees the entity's slot, advances the slot's generation and
// invalidates any EntityRef pointing at it.
func (a *Archetype) Delete(entityIndex uint32) {
	if !a.Contains(entityIndex) {
		return
	}
	entityId := a.entityId(int(entityIndex))
	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, col := range a.columns {
		col.Delete(int(entityIndex))
	}

	for int(entityIndex) >= len(a.generations) {
		a.generations = append(a.generations, 0)
	}
	a.generations[entityIndex]++
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(a.entityId(index)) {
				return
			}
		}
	}
}

// moveRef re-points a live EntityRef from oldId in a to newId in dst.
func (a *Archetype) moveRef(oldId EntityId, dst *Archetype, newId EntityId) {
	weakPtr, ok := a.refs.Get(oldId)
	if !ok {
		return
	}
	a.refs.Del(oldId)
	if ref := weakPtr.Value(); ref != nil {
		ref.Id = newId
		ref.Archetype = dst
		dst.refs.Put(newId, weakPtr)
	}
}
