package ecs

// EntityId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits).
// Ids stay valid while the entity moves between archetypes. Once the entity is deleted the
// slot's generation is bumped, so stale ids never resolve to a later occupant of the slot.
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// entityRecord locates a live entity inside its archetype.
type entityRecord struct {
	generation uint32
	alive      bool
	archetype  *Archetype
	row        uint32
}
