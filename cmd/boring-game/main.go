// Command boring-game opens a window and moves the player sprite left and
// right with the keyboard.
package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/boringgame/ecs/debugui/ebiten"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML settings file. Built-in defaults are used when empty.")
	watch := flag.Bool("watch", false, "Reload the settings file whenever it changes.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	flag.Parse()

	bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	s := settings.Default()
	if *configPath != "" {
		loaded, err := settings.Load(*configPath)
		if err != nil {
			bootLog.Fatal().Err(err).Msg("failed to load settings")
		}
		s = loaded
	}

	logger, err := s.Log.NewLogger(os.Stderr)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to create logger")
	}

	g := game.Initialize(
		&game.Viewport{Width: float64(s.Window.Width), Height: float64(s.Window.Height)},
		game.WithConfig(s.Game.Config()),
		game.WithLogger(logger),
	)

	sprites, err := loadSprites(s, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load sprites")
	}

	h := newHost(g, s, sprites, logger)

	if *debug {
		player, _ := g.Player()
		h.overlay = debugui_ebiten.NewOverlay(
			g.Storage(),
			s.Window.Title, s.Window.Width, s.Window.Height,
			player, g.Scheduler(),
		)
	}

	var watcher *settings.Watcher
	if *watch {
		if *configPath == "" {
			logger.Warn().Msg("-watch has no effect without -config")
		} else {
			if watcher, err = settings.Watch(*configPath); err != nil {
				logger.Fatal().Err(err).Msg("failed to watch settings")
			}
			h.watcher = watcher
		}
	}

	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowPosition(s.Window.X, s.Window.Y)
	ebiten.SetTPS(g.Config().TickRate)

	logger.Info().
		Str("title", s.Window.Title).
		Int("width", s.Window.Width).
		Int("height", s.Window.Height).
		Bool("debug", *debug).
		Msg("starting")

	err = ebiten.RunGame(h)
	// Fatal exits without running deferred calls, so the watcher is closed first.
	if watcher != nil {
		if cerr := watcher.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close settings watcher")
		}
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("game loop failed")
	}
}
