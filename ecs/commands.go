package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	parents []parentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
	parent     EntityId
	hasParent  bool
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

type parentCommand struct {
	child  EntityId
	parent EntityId
}

// Defer queues a function to run after every other command has been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnChild queues the spawn of an entity owned by parent.
func (c *Commands) SpawnChild(parent EntityId, components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components, parent: parent, hasParent: true})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// SetParent queues a parent assignment.
func (c *Commands) SetParent(child, parent EntityId) {
	c.parents = append(c.parents, parentCommand{child: child, parent: parent})
}

// Flush applies all commands to storage in the order deletes, removes, adds,
// parent changes, spawns, defers, and resets the buffer.
func (c *Commands) Flush(storage *Storage) {
	// deleted ids fail Alive, so later commands on them are no-ops
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.removes {
		storage.RemoveComponent(cmd.entity, cmd.compType)
	}

	for _, cmd := range c.adds {
		storage.AddComponent(cmd.entity, cmd.component)
	}

	for _, cmd := range c.parents {
		storage.SetParent(cmd.child, cmd.parent)
	}

	for _, cmd := range c.spawns {
		id := storage.Spawn(cmd.components...)
		if cmd.hasParent {
			storage.SetParent(id, cmd.parent)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.parents = c.parents[:0]
	c.defers = c.defers[:0]
}
