package ecs_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/sailsim/ecs"
)

func TestSetParent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Name{Value: "ship"})
	sail := storage.Spawn(Name{Value: "sail"})
	flag := storage.Spawn(Name{Value: "flag"})

	require.True(t, storage.SetParent(sail, ship))
	require.True(t, storage.SetParent(flag, ship))

	parent, ok := storage.Parent(sail)
	assert.True(t, ok)
	assert.Equal(t, ship, parent)

	_, ok = storage.Parent(ship)
	assert.False(t, ok)

	assert.Equal(t, []ecs.EntityId{sail, flag}, slices.Collect(storage.Children(ship)))
}

func TestSetParentSurvivesArchetypeMove(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Position{})
	sail := storage.Spawn(Position{})
	storage.SetParent(sail, ship)

	storage.AddComponent(ship, Velocity{DX: 1})
	storage.AddComponent(sail, Frozen{})

	parent, ok := storage.Parent(sail)
	assert.True(t, ok)
	assert.Equal(t, ship, parent)
}

func TestSetParentRejectsInvalidEdges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Score(1))
	b := storage.Spawn(Score(2))
	c := storage.Spawn(Score(3))
	dead := storage.Spawn(Score(4))
	storage.Delete(dead)

	assert.False(t, storage.SetParent(a, a), "self")
	assert.False(t, storage.SetParent(a, dead), "dead parent")
	assert.False(t, storage.SetParent(dead, a), "dead child")

	require.True(t, storage.SetParent(b, a))
	require.True(t, storage.SetParent(c, b))
	assert.False(t, storage.SetParent(a, c), "cycle")

	parent, _ := storage.Parent(a)
	assert.Equal(t, ecs.EntityId(0), parent)
}

func TestReparent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Score(1))
	second := storage.Spawn(Score(2))
	child := storage.Spawn(Score(3))

	storage.SetParent(child, first)
	storage.SetParent(child, second)

	parent, _ := storage.Parent(child)
	assert.Equal(t, second, parent)
	assert.Empty(t, slices.Collect(storage.Children(first)))
	assert.Equal(t, []ecs.EntityId{child}, slices.Collect(storage.Children(second)))

	storage.RemoveParent(child)
	_, ok := storage.Parent(child)
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(storage.Children(second)))
}

func TestDeleteParentOrphansChildren(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Score(1))
	sail := storage.Spawn(Score(2))
	storage.SetParent(sail, ship)

	storage.Delete(ship)

	assert.True(t, storage.Alive(sail))
	_, ok := storage.Parent(sail)
	assert.False(t, ok)

	// the reused slot must not adopt the orphan
	replacement := storage.Spawn(Score(3))
	assert.Equal(t, ship.Index(), replacement.Index())
	_, ok = storage.Parent(sail)
	assert.False(t, ok)
	assert.Empty(t, slices.Collect(storage.Children(replacement)))
}

func TestDeleteChildDetaches(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ship := storage.Spawn(Score(1))
	sail := storage.Spawn(Score(2))
	storage.SetParent(sail, ship)

	storage.Delete(sail)

	assert.Empty(t, slices.Collect(storage.Children(ship)))
}
