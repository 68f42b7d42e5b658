package ecs

import (
	"reflect"
	"slices"
)

// Storage owns every entity, component, resource and event queue of a world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// order keeps archetypes in creation order so iteration is deterministic
	order []*Archetype

	entities []entityRecord
	free     []uint32

	hierarchy *hierarchy
	resources map[reflect.Type]*resourceEntry
	events    map[reflect.Type]eventQueue
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		hierarchy:  newHierarchy(),
		resources:  make(map[reflect.Type]*resourceEntry),
		events:     make(map[reflect.Type]eventQueue),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns the archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// GetArchetype returns the archetype holding exactly the given component values' types, if any
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types, _ := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns the archetype holding exactly the given types, if any
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	slices.SortFunc(sorted, func(a, b reflect.Type) int {
		return compareTypeNames(a, b)
	})
	return s.archetypes[hashTypesToUint32(sorted)]
}

func compareTypeNames(a, b reflect.Type) int {
	switch {
	case a.String() < b.String():
		return -1
	case a.String() > b.String():
		return 1
	}
	return 0
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	if archetype, ok := s.archetypes[id]; ok {
		if !slices.Equal(archetype.types, types) {
			panic("archetype hash collision")
		}
		return archetype
	}
	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.order = append(s.order, archetype)
	return archetype
}

func (s *Storage) allocate() EntityId {
	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		rec := &s.entities[index]
		rec.alive = true
		return NewEntityId(index, rec.generation)
	}
	index := uint32(len(s.entities))
	s.entities = append(s.entities, entityRecord{generation: 1, alive: true})
	return NewEntityId(index, 1)
}

// record returns the live record for id, or nil when the id is stale or unknown.
func (s *Storage) record(id EntityId) *entityRecord {
	index := id.Index()
	if int(index) >= len(s.entities) {
		return nil
	}
	rec := &s.entities[index]
	if !rec.alive || rec.generation != id.Generation() {
		return nil
	}
	return rec
}

// Alive reports whether id refers to an entity that has not been deleted.
func (s *Storage) Alive(id EntityId) bool {
	return s.record(id) != nil
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types, sorted := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	id := s.allocate()
	rec := &s.entities[id.Index()]
	rec.archetype = archetype
	rec.row = archetype.spawn(id, sorted)
	return id
}

// Delete removes all data related to the entity ID. The entity is detached from its
// parent and its children become roots.
func (s *Storage) Delete(id EntityId) {
	rec := s.record(id)
	if rec == nil {
		return
	}

	rec.archetype.delete(rec.row)
	rec.archetype = nil
	rec.alive = false
	rec.generation++
	s.free = append(s.free, id.Index())

	s.hierarchy.forget(id)
}

// AddComponent attaches component to the entity, moving it to a new archetype.
// If the entity already has a component of that type its value is replaced in place.
// Returns false if the entity does not exist.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	rec := s.record(id)
	if rec == nil {
		return false
	}

	compType := componentType(component)
	if rec.archetype.HasComponent(compType) {
		return rec.archetype.setComponent(rec.row, component)
	}

	newTypes := make([]reflect.Type, 0, len(rec.archetype.types)+1)
	newTypes = append(newTypes, rec.archetype.types...)
	newTypes = append(newTypes, compType)
	slices.SortFunc(newTypes, compareTypeNames)

	s.move(id, rec, newTypes, component)
	return true
}

// RemoveComponent detaches a component type from the entity. Removing the last
// component deletes the entity. Returns false if nothing was removed.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	rec := s.record(id)
	if rec == nil || !rec.archetype.HasComponent(compType) {
		return false
	}

	newTypes := make([]reflect.Type, 0, len(rec.archetype.types)-1)
	for _, typ := range rec.archetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		s.Delete(id)
		return true
	}

	s.move(id, rec, newTypes, nil)
	return true
}

// move copies the entity's components into the archetype for newTypes, taking extra
// for the one type the old archetype does not hold.
func (s *Storage) move(id EntityId, rec *entityRecord, newTypes []reflect.Type, extra any) {
	oldArchetype := rec.archetype
	newArchetype := s.archetypeFor(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if comp := oldArchetype.GetComponent(rec.row, typ); comp != nil {
			components = append(components, comp)
		} else {
			components = append(components, extra)
		}
	}

	newRow := newArchetype.spawn(id, components)
	oldArchetype.delete(rec.row)
	rec.archetype = newArchetype
	rec.row = newRow
}

// GetComponent returns a pointer to the entity's component of the given type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	rec := s.record(id)
	if rec == nil {
		return nil
	}
	return rec.archetype.GetComponent(rec.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	rec := s.record(id)
	if rec == nil {
		return false
	}
	return rec.archetype.HasComponent(compType)
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
