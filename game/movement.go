package game

import (
	"github.com/plus3/boringgame/ecs"
	"github.com/rs/zerolog"
)

type playerMover struct {
	*Speed
	*Transform
	*Player
}

// MovementSystem moves the player horizontally while a direction key is
// held. The tick is skipped unless exactly one player exists.
type MovementSystem struct {
	Players  ecs.Query[playerMover]
	Keyboard ecs.Singleton[KeyboardState]

	Logger zerolog.Logger
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	var keys KeyboardState
	if state := s.Keyboard.Get(); state != nil {
		keys = *state
	}
	movePlayer(&s.Players, keys, frame.DeltaTime, &s.Logger)
}

func movePlayer(players *ecs.Query[playerMover], keys KeyboardState, dt float64, logger *zerolog.Logger) bool {
	_, mover, ok := players.Single()
	if !ok {
		logger.Trace().Int("matches", players.Len()).Msg("movement skipped")
		return false
	}

	mover.Transform.Translation.X += mover.Speed.Value * dt * Direction(keys)
	return true
}
