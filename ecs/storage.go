// Package ecs is an archetype entity-component-system: entities are grouped
// by their exact component set, systems read them through Query and Singleton
// fields, and structural changes made during a frame are buffered in Commands.
package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the EntityRef for id, reusing a live one if present.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Live(id) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of the referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Alive() {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly the given components, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// Archetypes returns every archetype ordered by id.
func (s *Storage) Archetypes() []*Archetype {
	result := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		result = append(result, archetype)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)
	return archetype.Spawn(components)
}

func (s *Storage) archetypeFor(sortedTypes []reflect.Type) *Archetype {
	id := hashTypesToUint32(sortedTypes)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, sortedTypes, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Alive reports whether id refers to a live entity. Ids of deleted entities
// stay dead even after their slot is reused.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Live(id)
}

// Delete removes all data related to the entity ID. Deleting a dead id is a no-op.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Live(id) {
		return
	}
	archetype.Delete(id.Index())
}

// AddComponent moves the entity to the archetype that also has component and
// returns its new id. An existing component of the same type is replaced.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Live(id) {
		return 0
	}

	compType := componentType(component)
	if oldArchetype.HasComponent(compType) {
		ptr := oldArchetype.GetComponent(id.Index(), compType)
		reflect.ValueOf(ptr).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}
	return s.move(id, oldArchetype, newTypes, components)
}

// RemoveComponent moves the entity to the archetype without compType. An
// entity left with no components is deleted and 0 is returned.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	if oldArchetype == nil || !oldArchetype.Live(id) {
		return 0
	}
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	components := make([]any, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ == compType {
			continue
		}
		newTypes = append(newTypes, typ)
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}
	return s.move(id, oldArchetype, newTypes, components)
}

func (s *Storage) move(id EntityId, from *Archetype, newTypes []reflect.Type, components []any) EntityId {
	to := s.archetypeFor(newTypes)
	newId := to.Spawn(components)
	from.moveRef(id, to, newId)
	from.Delete(id.Index())
	return newId
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Live(id) {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Live(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the world's only instance of its type,
// replacing any previous instance in place so cached pointers stay valid.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if entry, ok := s.singletons[typ]; ok {
		entry.value.Set(reflect.ValueOf(value))
		return
	}

	v := reflect.New(typ).Elem()
	v.Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   v,
		dataPtr: v.Addr().UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// ReadSingleton points *out at the singleton of type T. It reports false and
// leaves *out untouched when no such singleton exists.
//
//	var cfg *Config
//	if storage.ReadSingleton(&cfg) { ... }
func (s *Storage) ReadSingleton(out any) bool {
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry := s.singletons[ptr.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	ptr.Elem().Set(entry.value.Addr())
	return true
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// hashTypesToUint32 is FNV-1a over the type descriptor addresses of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// iface mirrors the runtime layout of a non-empty interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}
