package ecs_test

import (
	"testing"

	"github.com/plus3/starshot/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	storage.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	storage.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[struct{ *Position }](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		assert.Panics(t, func() { fresh.Len() })
	})

	t.Run("cache reflects new archetypes after re-execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Position{}, Velocity{}, Name{Value: "new"})
		assert.Equal(t, before, query.Len(), "cache is stale until Execute")

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("values", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			assert.NotNil(t, item.Position)
			assert.NotNil(t, item.Velocity)
		}
	})
}

func TestQuerySingle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct {
		*Name
		*Hostile
	}](storage)

	query.Execute()
	_, _, ok := query.Single()
	assert.False(t, ok)

	id := storage.Spawn(Name{Value: "boss"}, Hostile{})
	query.Execute()
	got, item, ok := query.Single()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "boss", item.Name.Value)

	storage.Spawn(Name{Value: "minion"}, Hostile{})
	query.Execute()
	_, _, ok = query.Single()
	assert.False(t, ok)
}
