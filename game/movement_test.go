package game_test

import (
	"testing"

	"github.com/plus3/boringgame/ecs"
	"github.com/plus3/boringgame/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name string
		keys game.KeyboardState
		want float64
	}{
		{name: "none", keys: game.KeyboardState{}, want: 0},
		{name: "left", keys: game.Keys(game.KeyMoveLeft), want: -1},
		{name: "right", keys: game.Keys(game.KeyMoveRight), want: 1},
		{name: "both", keys: game.Keys(game.KeyMoveRight, game.KeyMoveLeft), want: -1},
		{name: "unrelated", keys: game.Keys("fire"), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, game.Direction(tt.keys))
		})
	}
}

func TestKeyboardState(t *testing.T) {
	var keys game.KeyboardState
	assert.False(t, keys.Pressed(game.KeyMoveLeft))
	keys.Release(game.KeyMoveLeft)

	keys.Press(game.KeyMoveRight)
	keys.Press(game.KeyMoveLeft)
	keys.Press(game.KeyMoveLeft)
	assert.Equal(t, 2, keys.Len())
	assert.Equal(t, []game.Key{game.KeyMoveLeft, game.KeyMoveRight}, keys.Held())
	assert.Equal(t, "[move-left move-right]", keys.String())

	clone := keys.Clone()
	keys.Release(game.KeyMoveLeft)
	assert.True(t, clone.Pressed(game.KeyMoveLeft))
	assert.False(t, keys.Pressed(game.KeyMoveLeft))
}

func TestPackageTick(t *testing.T) {
	storage := newStorage()
	player := game.SpawnPlayer(storage, game.Viewport{Width: 600, Height: 600}, game.DefaultConfig())

	for range 3 {
		game.Tick(storage, game.Keys(game.KeyMoveLeft), 0.1)
	}

	transform := ecs.ReadComponent[game.Transform](storage, player)
	require.NotNil(t, transform)
	assert.InDelta(t, -150, transform.Translation.X, tolerance)
	assert.InDelta(t, -276.25, transform.Translation.Y, tolerance)
}

func TestPackageTickWithoutPlayer(t *testing.T) {
	storage := newStorage()
	other := storage.Spawn(game.Transform{}, game.Speed{Value: 10})

	assert.NotPanics(t, func() {
		game.Tick(storage, game.Keys(game.KeyMoveRight), 1)
	})
	assert.Zero(t, ecs.ReadComponent[game.Transform](storage, other).Translation.X)
}

func TestMovementSystemMovesOnlyThePlayer(t *testing.T) {
	storage := newStorage()
	ecs.NewSingleton(storage, game.Keys(game.KeyMoveRight))

	player := game.SpawnPlayer(storage, game.Viewport{Height: 100}, game.DefaultConfig())
	npc := storage.Spawn(game.Transform{}, game.Speed{Value: 100})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.MovementSystem{})
	scheduler.Once(0.01)

	assert.InDelta(t, 5, ecs.ReadComponent[game.Transform](storage, player).Translation.X, tolerance)
	assert.Zero(t, ecs.ReadComponent[game.Transform](storage, npc).Translation.X)
}

func TestMovementSystemWithoutKeyboard(t *testing.T) {
	storage := newStorage()
	player := game.SpawnPlayer(storage, game.Viewport{Height: 100}, game.DefaultConfig())

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&game.MovementSystem{})

	assert.NotPanics(t, func() { scheduler.Once(1) })
	assert.Zero(t, ecs.ReadComponent[game.Transform](storage, player).Translation.X)
}

func TestPlayerSpawnSystemRequiresViewport(t *testing.T) {
	scheduler := ecs.NewScheduler(newStorage())
	scheduler.RegisterStartup(&game.PlayerSpawnSystem{Config: game.DefaultConfig()})

	assert.Panics(t, func() { scheduler.Startup() })
}

func TestPlayerSpawnSystemRunsOnce(t *testing.T) {
	storage := newStorage()
	ecs.NewSingleton(storage, game.Viewport{Width: 10, Height: 10})

	spawn := &game.PlayerSpawnSystem{Config: game.DefaultConfig()}
	scheduler := ecs.NewScheduler(storage)
	scheduler.RegisterStartup(spawn)

	for range 3 {
		scheduler.Once(1)
	}

	assert.Equal(t, 1, storage.Len())
	assert.True(t, storage.Alive(spawn.Spawned))
}
