package ecs_test

import (
	"testing"

	"github.com/plus3/boringgame/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movers = struct {
	*Position
	*Velocity
}

func TestQueryRequiresExecute(t *testing.T) {
	query := ecs.NewQuery[movers](ecs.NewStorage(newTestRegistry()))

	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Values() })
	assert.Panics(t, func() { query.Single() })
}

func TestQueryExecuteSnapshotsMatches(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	first := storage.Spawn(Position{}, Velocity{DX: 1})

	query := ecs.NewQuery[movers](storage)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	// A new archetype is picked up on the next Execute.
	second := storage.Spawn(Position{}, Velocity{DX: 2}, Health{})
	assert.Equal(t, 1, query.Len())

	query.Execute()
	ids := make([]ecs.EntityId, 0)
	for id := range query.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{first, second}, ids)

	// So is a new entity in an archetype the query already knows.
	third := storage.Spawn(Position{}, Velocity{DX: 3})
	query.Execute()
	ids = ids[:0]
	for id := range query.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{first, second, third}, ids)
}

func TestQueryValuesMutate(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1}, Velocity{DX: 0.5})

	query := ecs.NewQuery[movers](storage)
	query.Execute()
	for item := range query.Values() {
		item.Position.X += item.Velocity.DX
	}

	assert.Equal(t, 1.5, ecs.ReadComponent[Position](storage, id).X)
}

func TestQuerySingle(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct {
		*Position
		*Marker
	}](storage)

	query.Execute()
	_, _, ok := query.Single()
	assert.False(t, ok, "no match")

	only := storage.Spawn(Position{X: 2}, Marker{})
	query.Execute()
	id, item, ok := query.Single()
	require.True(t, ok)
	assert.Equal(t, only, id)
	assert.Equal(t, float64(2), item.Position.X)

	storage.Spawn(Position{X: 3}, Marker{})
	query.Execute()
	_, _, ok = query.Single()
	assert.False(t, ok, "two matches")
}
