package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// viewField describes one field of a view struct.
type viewField struct {
	typ      reflect.Type // component type, nil for the EntityId field
	offset   uintptr
	optional bool
}

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded or named pointer fields for each
// component type. Named fields can be marked as optional using the `ecs:"optional"`
// struct tag. A field of type EntityId (embedded or named) receives the entity's id.
type View[T any] struct {
	storage *Storage
	fields  []viewField
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			fields = append(fields, viewField{offset: field.Offset})
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		// Embedded fields are always required
		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		fields = append(fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return &View[T]{
		storage: storage,
		fields:  fields,
	}
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity does not exist or is missing any required component.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	rec := v.storage.record(id)
	if rec == nil || !v.matchesArchetype(rec.archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), rec.archetype, v.storageIndices(rec.archetype), rec.row, id)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// matchesArchetype checks if an archetype contains all the required component types for this view
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for _, field := range v.fields {
		if field.typ == nil || field.optional {
			continue
		}
		if !archetype.HasComponent(field.typ) {
			return false
		}
	}
	return true
}

// storageIndices maps each view field to its column in archetype, -1 when absent.
func (v *View[T]) storageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.fields))
	for i, field := range v.fields {
		indices[i] = -1
		if field.typ != nil {
			indices[i] = archetype.storageIndex(field.typ)
		}
	}
	return indices
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, indices []int, row uint32, id EntityId) bool {
	for i, field := range v.fields {
		fieldPtr := unsafe.Add(resultPtr, field.offset)

		if field.typ == nil {
			*(*EntityId)(fieldPtr) = id
			continue
		}

		var component any
		if indices[i] != -1 {
			component = archetype.storages[indices[i]].Get(int(row))
		}
		if component == nil {
			if !field.optional {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
	return true
}

// iterArchetype yields every entity of a matching archetype.
func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		indices := v.storageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for row, id := range archetype.Iter() {
			if !v.populate(resultPtr, archetype, indices, row, id) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities that have all the required components for this view.
// Archetypes are visited in creation order and rows in storage order, so iteration is deterministic.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matchesArchetype(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the view.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
