package ecs

import (
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Archetype represents a unique combination of component types.
// Each component type is stored in its own column; a row index addresses the
// same entity in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	owners   *intmap.Map[uint32, EntityId]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		owners:   intmap.New[uint32, EntityId](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn appends the components as a new row owned by entity and returns the row.
// components must be in the archetype's type order.
func (a *Archetype) spawn(entity EntityId, components []any) uint32 {
	row := -1
	for idx, comp := range components {
		row = a.storages[idx].Append(comp)
	}
	a.owners.Put(uint32(row), entity)
	return uint32(row)
}

// delete removes a row from every column. Rows of other entities are untouched.
func (a *Archetype) delete(row uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	a.owners.Del(row)
}

func (a *Archetype) storageIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored at row, or nil.
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(row))
}

func (a *Archetype) setComponent(row uint32, component any) bool {
	idx := a.storageIndex(componentType(component))
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(row), component)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype
func (a *Archetype) Len() int {
	return a.owners.Len()
}

// Iter yields every occupied row with the entity that owns it, in row order.
func (a *Archetype) Iter() iter.Seq2[uint32, EntityId] {
	return func(yield func(uint32, EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for row := range a.storages[0].Iter() {
			owner, ok := a.owners.Get(uint32(row))
			if !ok {
				continue
			}
			if !yield(uint32(row), owner) {
				return
			}
		}
	}
}

// componentType returns the value type of a component, dereferencing pointers.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// extractComponentTypes returns the sorted component types and the components in the same order.
func extractComponentTypes(components []any) ([]reflect.Type, []any) {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives (int, string, etc.)
		// But not pointers, maps, channels, or functions (those aren't value types)
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}
		types = append(types, compType)
	}

	order := make([]int, len(types))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		return compareTypeNames(types[i], types[j])
	})

	sortedTypes := make([]reflect.Type, len(types))
	sortedComponents := make([]any, len(components))
	for i, idx := range order {
		sortedTypes[i] = types[idx]
		sortedComponents[i] = components[idx]
	}
	return sortedTypes, sortedComponents
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in all 4 bytes if on 64-bit system
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}
