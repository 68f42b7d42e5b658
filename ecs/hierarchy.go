package ecs

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

// hierarchy is the parent/child index. Children hold no pointer to their parent;
// the parent's id is looked up here and validated against the entity table on
// every read.
type hierarchy struct {
	parents  *intmap.Map[EntityId, EntityId]
	children map[EntityId][]EntityId
}

func newHierarchy() *hierarchy {
	return &hierarchy{
		parents:  intmap.New[EntityId, EntityId](64),
		children: make(map[EntityId][]EntityId),
	}
}

func (h *hierarchy) detach(child EntityId) {
	parent, ok := h.parents.Get(child)
	if !ok {
		return
	}
	h.parents.Del(child)

	siblings := slices.DeleteFunc(h.children[parent], func(id EntityId) bool { return id == child })
	if len(siblings) == 0 {
		delete(h.children, parent)
	} else {
		h.children[parent] = siblings
	}
}

// forget drops every edge touching id.
func (h *hierarchy) forget(id EntityId) {
	h.detach(id)
	for _, child := range h.children[id] {
		h.parents.Del(child)
	}
	delete(h.children, id)
}

// SetParent makes parent the owner of child, replacing any previous parent.
// Returns false if either entity is dead or the edge would create a cycle.
func (s *Storage) SetParent(child, parent EntityId) bool {
	if child == parent || !s.Alive(child) || !s.Alive(parent) {
		return false
	}
	for ancestor, ok := parent, true; ok; ancestor, ok = s.hierarchy.parents.Get(ancestor) {
		if ancestor == child {
			return false
		}
	}

	s.hierarchy.detach(child)
	s.hierarchy.parents.Put(child, parent)
	s.hierarchy.children[parent] = append(s.hierarchy.children[parent], child)
	return true
}

// RemoveParent detaches child from its parent, if it has one.
func (s *Storage) RemoveParent(child EntityId) {
	s.hierarchy.detach(child)
}

// Parent resolves the parent of child. It returns false when child has no parent
// or the parent no longer exists.
func (s *Storage) Parent(child EntityId) (EntityId, bool) {
	parent, ok := s.hierarchy.parents.Get(child)
	if !ok || !s.Alive(parent) {
		return 0, false
	}
	return parent, true
}

// Children yields the live children of parent in the order they were attached.
func (s *Storage) Children(parent EntityId) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, child := range s.hierarchy.children[parent] {
			if !s.Alive(child) {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}
