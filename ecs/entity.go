package ecs

// EntityId packs the archetype ID (upper 32 bits), the slot generation
// (next 8 bits) and the slot index (lower 24 bits). A slot's generation
// changes every time it is freed, so an id kept past its entity's deletion
// never names the entity that later reuses the slot.
type EntityId uint64

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
)

// NewEntityId creates an EntityId. Only the low 24 bits of index are kept.
func NewEntityId(archetypeId uint32, generation uint8, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(generation)<<indexBits | uint64(index&indexMask))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the slot generation the id was issued for.
func (e EntityId) Generation() uint8 {
	return uint8(e >> indexBits)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & indexMask)
}

// EntityRef follows an entity across archetype moves. Id is zeroed once the
// entity is deleted, so holders can tell a despawned entity from a live one.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}
