package main

import (
	"math/rand/v2"

	"github.com/plus3/boringgame/ecs"
	"github.com/plus3/boringgame/game"
)

// Laser tags an entity that flies up the screen and is replaced once it
// leaves the viewport.
type Laser struct{}

// LaserSystem moves lasers up by their speed. Lasers past the top edge are
// deleted and a new one is spawned at the bottom edge, both through the
// frame's command buffer.
type LaserSystem struct {
	Lasers ecs.Query[struct {
		Id ecs.EntityId
		*game.Transform
		*game.Speed
		*Laser
	}]
	Viewport ecs.Singleton[game.Viewport]

	Sprite string

	// Recycled counts the lasers replaced so far.
	Recycled int
}

func (s *LaserSystem) Execute(frame *ecs.UpdateFrame) {
	viewport := s.Viewport.Get()
	if viewport == nil {
		return
	}
	top := viewport.Height / 2

	for laser := range s.Lasers.Values() {
		laser.Transform.Translation.Y += laser.Speed.Value * frame.DeltaTime
		if laser.Transform.Translation.Y <= top {
			continue
		}

		frame.Commands.Delete(laser.Id)
		frame.Commands.Spawn(newLaser(laser.Transform.Translation.X, -top, laser.Speed.Value, s.Sprite)...)
		s.Recycled++
	}
}

// SpawnLaser places a laser at a random point of viewport.
func SpawnLaser(storage *ecs.Storage, viewport game.Viewport, sprite string, rng *rand.Rand) ecs.EntityId {
	x := (rng.Float64() - 0.5) * viewport.Width
	y := (rng.Float64() - 0.5) * viewport.Height
	speed := 100 + rng.Float64()*400
	return storage.Spawn(newLaser(x, y, speed, sprite)...)
}

func newLaser(x, y, speed float64, sprite string) []any {
	return []any{
		game.Transform{
			Translation: game.Vec3{X: x, Y: y, Z: 5},
			Scale:       game.Vec2{X: 1, Y: 1},
		},
		game.Speed{Value: speed},
		game.Sprite{Name: sprite},
		Laser{},
	}
}

// scriptPhases is the input script, repeated: hold right, hold left, hold
// nothing, hold both.
var scriptPhases = []struct {
	ticks int64
	keys  []game.Key
}{
	{ticks: 30, keys: []game.Key{game.KeyMoveRight}},
	{ticks: 30, keys: []game.Key{game.KeyMoveLeft}},
	{ticks: 15},
	{ticks: 15, keys: []game.Key{game.KeyMoveLeft, game.KeyMoveRight}},
}

// ScriptedKeys returns the keys held at tick.
func ScriptedKeys(tick int64) game.KeyboardState {
	var cycle int64
	for _, phase := range scriptPhases {
		cycle += phase.ticks
	}

	t := tick % cycle
	for _, phase := range scriptPhases {
		if t < phase.ticks {
			return game.Keys(phase.keys...)
		}
		t -= phase.ticks
	}
	return game.KeyboardState{}
}
