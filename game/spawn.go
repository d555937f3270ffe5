package game

import (
	"github.com/plus3/boringgame/ecs"
	"github.com/rs/zerolog"
)

// SpawnPlayer creates the player entity near the bottom edge of viewport.
func SpawnPlayer(storage *ecs.Storage, viewport Viewport, cfg Config) ecs.EntityId {
	return storage.Spawn(
		Transform{
			Translation: Vec3{
				X: 0,
				Y: -viewport.Height/2 + cfg.SpawnOffset,
				Z: cfg.SpawnDepth,
			},
			Scale: Vec2{X: cfg.PlayerScale, Y: cfg.PlayerScale},
		},
		Speed{Value: cfg.PlayerSpeed},
		Player{},
		Sprite{Name: cfg.PlayerSprite},
	)
}

// PlayerSpawnSystem spawns the player. It belongs in the startup stage.
type PlayerSpawnSystem struct {
	Viewport ecs.Singleton[Viewport]

	Config Config
	Logger zerolog.Logger

	// Spawned is the player created by the last Execute.
	Spawned ecs.EntityId
}

func (s *PlayerSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	viewport := s.Viewport.Get()
	if viewport == nil {
		panic("player spawn requires a Viewport singleton")
	}

	s.Spawned = SpawnPlayer(frame.Storage, *viewport, s.Config)

	s.Logger.Debug().
		Uint64("entity", uint64(s.Spawned)).
		Float64("viewport_height", viewport.Height).
		Msg("player spawned")
}
