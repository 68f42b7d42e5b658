package ecs

import (
	"iter"
	"reflect"
)

// iComponentStorage is a type-erased column of components inside an archetype.
type iComponentStorage interface {
	Append(item any) int
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether the component type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage stores components of type T in fixed-size blocks so that
// pointers handed out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func slotOf(index int) (int, int) {
	return index / blockSize, index % blockSize
}

func (cs *blockStorage[T]) unwrap(item any) (T, bool) {
	if ptr, ok := item.(*T); ok {
		return *ptr, true
	}
	val, ok := item.(T)
	return val, ok
}

// Append adds a component and returns its index. Freed slots are reused last-in first-out.
func (cs *blockStorage[T]) Append(item any) int {
	value, ok := cs.unwrap(item)
	if !ok {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if block, _ := slotOf(index); block >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([blockSize]T))
			cs.filled = append(cs.filled, [blockSize]bool{})
		}
	}

	block, slot := slotOf(index)
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.count++
	return index
}

// Set overwrites an occupied slot in place.
func (cs *blockStorage[T]) Set(index int, item any) bool {
	if !cs.Has(index) {
		return false
	}
	value, ok := cs.unwrap(item)
	if !ok {
		return false
	}
	block, slot := slotOf(index)
	cs.blocks[block][slot] = value
	return true
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	block, slot := slotOf(index)
	return &cs.blocks[block][slot]
}

// Delete marks a component slot as empty and zeroes it.
func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	block, slot := slotOf(index)
	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}
	block, slot := slotOf(index)
	if block >= len(cs.filled) {
		return false
	}
	return cs.filled[block][slot]
}

// Len returns the number of occupied slots.
func (cs *blockStorage[T]) Len() int {
	return cs.count
}

// Iter yields occupied indices in ascending order.
func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot := slotOf(i)
			if !cs.filled[block][slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
