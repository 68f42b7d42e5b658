package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sailsim/ecs"
)

func TestCommandsDeferStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	existing := storage.Spawn(Position{X: 1})
	doomed := storage.Spawn(Score(5))

	cmds := &ecs.Commands{}
	cmds.Spawn(Position{X: 2}, Velocity{DX: 1})
	cmds.Delete(doomed)
	cmds.AddComponent(existing, Health{Current: 3, Max: 3})

	assert.True(t, storage.Alive(doomed), "nothing happens before Flush")
	assert.False(t, storage.HasComponent(existing, ecs.TypeOf[Health]()))
	assert.Nil(t, storage.GetArchetype(Position{}, Velocity{}))

	cmds.Flush(storage)

	assert.False(t, storage.Alive(doomed))
	health := ecs.ReadComponent[Health](storage, existing)
	require.NotNil(t, health)
	assert.Equal(t, 3, health.Current)

	archetype := storage.GetArchetype(Position{}, Velocity{})
	require.NotNil(t, archetype)
	assert.Equal(t, 1, archetype.Len())
}

func TestCommandsRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4}, Frozen{})

	cmds := &ecs.Commands{}
	cmds.RemoveComponent(id, ecs.TypeOf[Frozen]())
	cmds.Flush(storage)

	assert.False(t, storage.HasComponent(id, ecs.TypeOf[Frozen]()))
	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, id).X)
}

func TestCommandsDeleteWinsOverLaterCommands(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})

	cmds := &ecs.Commands{}
	cmds.AddComponent(id, Score(1))
	cmds.Delete(id)
	cmds.Flush(storage)

	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetArchetype(Position{}, Score(0)))
}

func TestCommandsHierarchy(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	parent := storage.Spawn(Name{Value: "hull"})
	orphan := storage.Spawn(Name{Value: "flag"})

	cmds := &ecs.Commands{}
	cmds.SpawnChild(parent, Name{Value: "sail"})
	cmds.SetParent(orphan, parent)
	cmds.Flush(storage)

	var names []string
	for child := range storage.Children(parent) {
		names = append(names, ecs.ReadComponent[Name](storage, child).Value)
	}
	assert.Equal(t, []string{"flag", "sail"}, names, "parent changes apply before spawns")

	got, ok := storage.Parent(orphan)
	assert.True(t, ok)
	assert.Equal(t, parent, got)
}

func TestCommandsDeferRunsLast(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	cmds := &ecs.Commands{}
	var seen int
	cmds.Defer(func() {
		seen = ecs.NewView[struct{ *Score }](storage).Count()
	})
	cmds.Spawn(Score(1))
	cmds.Spawn(Score(2))
	cmds.Flush(storage)

	assert.Equal(t, 2, seen)
}

func TestCommandsFlushResetsBuffer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	cmds := &ecs.Commands{}
	calls := 0
	cmds.Spawn(Score(1))
	cmds.Defer(func() { calls++ })
	cmds.Flush(storage)
	cmds.Flush(storage)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, ecs.NewView[struct{ *Score }](storage).Count())
}
