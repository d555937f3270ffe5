// Package settings loads the host settings file of the game.
//
// Every key of the file is optional. Missing keys keep the values returned by
// Default, and unknown keys are rejected so typos do not go unnoticed.
package settings

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/plus3/boringgame/game"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error describing a bad settings value.
var ErrInvalid = eris.New("invalid settings")

type Settings struct {
	Window   WindowSettings `yaml:"window"`
	Assets   AssetSettings  `yaml:"assets"`
	Bindings Bindings       `yaml:"bindings"`
	Log      LogSettings    `yaml:"log"`
	Game     GameSettings   `yaml:"game"`
}

type WindowSettings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	// ClearColor is the RGB background, each channel in [0, 1].
	ClearColor [3]float64 `yaml:"clear_color"`
}

// AssetSettings locates sprite files. The player sprite name comes from
// GameSettings.PlayerSprite, which is also what the player entity carries.
type AssetSettings struct {
	Dir         string `yaml:"dir"`
	LaserSprite string `yaml:"laser_sprite"`
}

// GameSettings mirrors game.Config.
type GameSettings struct {
	TickRate     int     `yaml:"tick_rate"`
	PlayerSpeed  float64 `yaml:"player_speed"`
	SpawnOffset  float64 `yaml:"spawn_offset"`
	SpawnDepth   float64 `yaml:"spawn_depth"`
	PlayerScale  float64 `yaml:"player_scale"`
	PlayerSprite string  `yaml:"player_sprite"`
}

func (g GameSettings) Config() game.Config {
	return game.Config{
		TickRate:     g.TickRate,
		PlayerSpeed:  g.PlayerSpeed,
		SpawnOffset:  g.SpawnOffset,
		SpawnDepth:   g.SpawnDepth,
		PlayerScale:  g.PlayerScale,
		PlayerSprite: g.PlayerSprite,
	}
}

func Default() *Settings {
	cfg := game.DefaultConfig()
	return &Settings{
		Window: WindowSettings{
			Title:      "Boring Game",
			Width:      600,
			Height:     600,
			X:          10,
			Y:          10,
			ClearColor: [3]float64{0.4, 0.4, 0.4},
		},
		Assets: AssetSettings{
			Dir:         "assets",
			LaserSprite: "laser_a_01.png",
		},
		Bindings: Bindings{
			game.KeyMoveLeft:  {"ArrowLeft", "A"},
			game.KeyMoveRight: {"ArrowRight", "D"},
		},
		Log: LogSettings{
			Level:  "info",
			Pretty: true,
		},
		Game: GameSettings{
			TickRate:     cfg.TickRate,
			PlayerSpeed:  cfg.PlayerSpeed,
			SpawnOffset:  cfg.SpawnOffset,
			SpawnDepth:   cfg.SpawnDepth,
			PlayerScale:  cfg.PlayerScale,
			PlayerSprite: cfg.PlayerSprite,
		},
	}
}

// Load reads and validates the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reading settings %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "loading settings %s", path)
	}
	return s, nil
}

// Parse decodes data on top of Default and validates the result. Bindings
// are merged per logical key, so overriding one key keeps the others.
func Parse(data []byte) (*Settings, error) {
	s := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, eris.Wrap(err, "decoding settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return eris.Wrapf(ErrInvalid, "window size %dx%d", s.Window.Width, s.Window.Height)
	}
	for _, c := range s.Window.ClearColor {
		if c < 0 || c > 1 {
			return eris.Wrapf(ErrInvalid, "clear color channel %g outside [0, 1]", c)
		}
	}
	if err := s.Bindings.Validate(); err != nil {
		return err
	}
	if _, err := s.Log.ParseLevel(); err != nil {
		return err
	}
	if err := s.Game.Config().Validate(); err != nil {
		return eris.Wrapf(ErrInvalid, "game: %v", err)
	}
	return nil
}

// SpriteNames returns the sprite files a host needs to load, player first.
func (s *Settings) SpriteNames() []string {
	names := make([]string, 0, 2)
	for _, name := range []string{s.Game.PlayerSprite, s.Assets.LaserSprite} {
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// Marshal encodes s as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, eris.Wrap(err, "encoding settings")
	}
	if err := enc.Close(); err != nil {
		return nil, eris.Wrap(err, "encoding settings")
	}
	return buf.Bytes(), nil
}
