package game_test

import (
	"testing"

	"github.com/plus3/boringgame/game"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := game.DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 500.0, cfg.PlayerSpeed)
	assert.Equal(t, 23.75, cfg.SpawnOffset)
	assert.Equal(t, 10.0, cfg.SpawnDepth)
	assert.Equal(t, 0.5, cfg.PlayerScale)
	assert.InDelta(t, 1.0/60, cfg.DeltaTime(), 1e-12)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*game.Config)
	}{
		{name: "zero tick rate", modify: func(c *game.Config) { c.TickRate = 0 }},
		{name: "negative tick rate", modify: func(c *game.Config) { c.TickRate = -5 }},
		{name: "negative speed", modify: func(c *game.Config) { c.PlayerSpeed = -1 }},
		{name: "zero scale", modify: func(c *game.Config) { c.PlayerScale = 0 }},
		{name: "no sprite", modify: func(c *game.Config) { c.PlayerSprite = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := game.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.True(t, eris.Is(err, game.ErrInvalidConfig))
		})
	}

	t.Run("zero speed is allowed", func(t *testing.T) {
		cfg := game.DefaultConfig()
		cfg.PlayerSpeed = 0
		assert.NoError(t, cfg.Validate())
	})
}
