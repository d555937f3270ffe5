package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := settings.Default()

	require.NoError(t, s.Validate())
	assert.Equal(t, "Boring Game", s.Window.Title)
	assert.Equal(t, 600, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, 10, s.Window.X)
	assert.Equal(t, 10, s.Window.Y)
	assert.Equal(t, [3]float64{0.4, 0.4, 0.4}, s.Window.ClearColor)
	assert.Equal(t, "laser_a_01.png", s.Assets.LaserSprite)
	assert.Equal(t, game.DefaultConfig(), s.Game.Config())
	assert.Equal(t, []string{"ArrowLeft", "A"}, s.Bindings[game.KeyMoveLeft])
}

func TestParseEmpty(t *testing.T) {
	s, err := settings.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
}

func TestParseOverrides(t *testing.T) {
	s, err := settings.Parse([]byte(`
window:
  title: Faster
  width: 800
bindings:
  move-left: [Q]
log:
  level: debug
  pretty: false
game:
  tick_rate: 120
  player_speed: 250
`))
	require.NoError(t, err)

	assert.Equal(t, "Faster", s.Window.Title)
	assert.Equal(t, 800, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, []string{"Q"}, s.Bindings[game.KeyMoveLeft])
	assert.Equal(t, []string{"ArrowRight", "D"}, s.Bindings[game.KeyMoveRight])
	assert.Equal(t, "debug", s.Log.Level)
	assert.False(t, s.Log.Pretty)

	cfg := s.Game.Config()
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, 250.0, cfg.PlayerSpeed)
	assert.Equal(t, game.DefaultSpawnOffset, cfg.SpawnOffset)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		invalid bool
	}{
		{name: "unknown top level key", input: "sound: {volume: 1}"},
		{name: "unknown nested key", input: "window: {fullscreen: true}"},
		{name: "wrong type", input: "window: {width: wide}"},
		{name: "short clear color", input: "window: {clear_color: [1, 1]}"},
		{name: "zero width", input: "window: {width: 0}", invalid: true},
		{name: "bright clear color", input: "window: {clear_color: [2, 0, 0]}", invalid: true},
		{name: "bad log level", input: "log: {level: loud}", invalid: true},
		{name: "zero tick rate", input: "game: {tick_rate: 0}", invalid: true},
		{name: "negative speed", input: "game: {player_speed: -1}", invalid: true},
		{name: "empty binding", input: "bindings: {move-left: ['']}", invalid: true},
		{name: "empty player sprite", input: "game: {player_sprite: ''}", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := settings.Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, eris.Is(err, settings.ErrInvalid), err.Error())
		})
	}
}

func TestSpriteNames(t *testing.T) {
	assert.Equal(t, []string{"player_a_01.png", "laser_a_01.png"}, settings.Default().SpriteNames())

	s, err := settings.Parse([]byte("game: {player_sprite: hero.png}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"hero.png", "laser_a_01.png"}, s.SpriteNames())
	assert.Equal(t, "hero.png", s.Game.Config().PlayerSprite)

	s, err = settings.Parse([]byte("assets: {laser_sprite: ''}"))
	require.NoError(t, err)
	assert.Equal(t, []string{"player_a_01.png"}, s.SpriteNames())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: {title: From File}\n"), 0o644))

	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From File", s.Window.Title)

	_, err = settings.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTripsDefaults(t *testing.T) {
	data, err := settings.Default().Marshal()
	require.NoError(t, err)

	s, err := settings.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, settings.Default(), s)
}
