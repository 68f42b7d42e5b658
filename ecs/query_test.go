package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/sailsim/ecs"
)

func TestQueryRequiresExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})
	assert.Panics(t, func() {
		for range query.Values() {
		}
	})
}

func TestQueryExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)
	query.Execute()

	assert.Equal(t, 1, query.Len())
	for id, item := range query.Iter() {
		assert.Equal(t, a, id)
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, a).X)
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})

	query := ecs.NewQuery[struct{ *Position }](storage)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{X: 2}, Health{})
	storage.Spawn(Position{X: 3})
	assert.Equal(t, 1, query.Len(), "cache is stable until the next Execute")

	query.Execute()
	assert.Equal(t, 3, query.Len())
}

func TestQueryDropsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Score(1))
	b := storage.Spawn(Score(2))

	query := ecs.NewQuery[struct{ *Score }](storage)
	query.Execute()
	assert.Equal(t, 2, query.Len())

	storage.Delete(a)
	query.Execute()

	var ids []ecs.EntityId
	for id := range query.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{b}, ids)
}
