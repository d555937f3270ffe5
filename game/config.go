package game

import "github.com/rotisserie/eris"

const (
	DefaultTickRate     = 60
	DefaultSpawnOffset  = 75.0/4 + 5
	DefaultSpawnDepth   = 10.0
	DefaultPlayerScale  = 0.5
	DefaultPlayerSprite = "player_a_01.png"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = eris.New("invalid game config")

// Config holds the constants of a run. They are read when the player is
// spawned and on every tick, and never change afterwards.
type Config struct {
	// TickRate is the number of fixed ticks per second.
	TickRate int
	// PlayerSpeed is the player's Speed in units per second.
	PlayerSpeed float64
	// SpawnOffset lifts the player above the bottom edge of the viewport.
	SpawnOffset float64
	// SpawnDepth is the player's Z.
	SpawnDepth   float64
	PlayerScale  float64
	PlayerSprite string
}

func DefaultConfig() Config {
	return Config{
		TickRate:     DefaultTickRate,
		PlayerSpeed:  DefaultSpeed,
		SpawnOffset:  DefaultSpawnOffset,
		SpawnDepth:   DefaultSpawnDepth,
		PlayerScale:  DefaultPlayerScale,
		PlayerSprite: DefaultPlayerSprite,
	}
}

// DeltaTime is the duration of one tick in seconds.
func (c Config) DeltaTime() float64 {
	return 1 / float64(c.TickRate)
}

func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "tick rate must be positive, got %d", c.TickRate)
	}
	if c.PlayerSpeed < 0 {
		return eris.Wrapf(ErrInvalidConfig, "player speed must not be negative, got %g", c.PlayerSpeed)
	}
	if c.PlayerScale <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "player scale must be positive, got %g", c.PlayerScale)
	}
	if c.PlayerSprite == "" {
		return eris.Wrap(ErrInvalidConfig, "player sprite is empty")
	}
	return nil
}
