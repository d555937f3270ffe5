// Command boring-term plays the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/boringgame/ecs"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML settings file. Built-in defaults are used when empty.")
	hold := flag.Int("hold", 8, "Ticks a key counts as held after its last press.")
	logPath := flag.String("log", "", "Write logs to this file. Logs are discarded when empty.")
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

	// The terminal belongs to the renderer, so logs go to a file or nowhere.
	logger := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			bootLog.Fatal().Err(err).Msg("failed to open log file")
		}
		defer f.Close()

		logs := s.Log
		logs.Pretty = false
		if logger, err = logs.NewLogger(f); err != nil {
			bootLog.Fatal().Err(err).Msg("failed to create logger")
		}
	}

	g := game.Initialize(
		&game.Viewport{Width: float64(s.Window.Width), Height: float64(s.Window.Height)},
		game.WithConfig(s.Game.Config()),
		game.WithLogger(logger),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to create screen")
	}
	if err := screen.Init(); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to initialize screen")
	}

	t := &terminal{
		screen:   screen,
		game:     g,
		bindings: s.Bindings,
		held:     newHoldTracker(*hold),
		title:    s.Window.Title,
		logger:   logger,
	}
	ticks := t.run()
	screen.Fini()

	fmt.Printf("%s: %d ticks\n", s.Window.Title, ticks)
}

type terminal struct {
	screen   tcell.Screen
	game     *game.Game
	bindings settings.Bindings
	held     *holdTracker
	title    string
	logger   zerolog.Logger
}

// run drives the game until a quit key is pressed and returns the number of
// ticks played.
func (t *terminal) run() uint64 {
	interval := time.Duration(float64(time.Second) * t.game.Config().DeltaTime())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	t.logger.Info().Dur("interval", interval).Msg("terminal loop started")

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return t.game.Scheduler().Tick()
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev.Key(), ev.Rune()) {
					return t.game.Scheduler().Tick()
				}
				t.held.Press(keyName(ev.Key(), ev.Rune()))
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case <-ticker.C:
			keys := t.bindings.Resolve(t.held.Held)
			t.game.Tick(keys)
			t.held.Tick()
			t.draw(keys)
		}
	}
}

func (t *terminal) draw(keys game.KeyboardState) {
	t.screen.Clear()
	width, height := t.screen.Size()
	viewport := t.game.Viewport()

	for _, r := range t.game.Renderables() {
		col, row, ok := toCell(r, viewport, width, height-1)
		if !ok {
			continue
		}
		t.screen.SetContent(col, row, spriteRune(r.Sprite), nil, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	status := t.title + "  keys " + keys.String()
	if id, ok := t.game.Player(); ok {
		if r := t.renderable(id); r != nil {
			status += fmt.Sprintf("  x %.1f", r.X-viewport.Width/2)
		}
	}
	status += "  (q to quit)"
	drawText(t.screen, 0, height-1, status, tcell.StyleDefault.Reverse(true))

	t.screen.Show()
}

func (t *terminal) renderable(id ecs.EntityId) *game.Renderable {
	for _, r := range t.game.Renderables() {
		if r.Entity == id {
			return &r
		}
	}
	return nil
}

// toCell maps a renderable from viewport pixels to a terminal cell.
func toCell(r game.Renderable, viewport game.Viewport, cols, rows int) (int, int, bool) {
	if cols <= 0 || rows <= 0 || viewport.Width <= 0 || viewport.Height <= 0 {
		return 0, 0, false
	}
	// Floor so positions just left of or above the viewport land on -1.
	col := int(math.Floor(r.X / viewport.Width * float64(cols)))
	row := int(math.Floor(r.Y / viewport.Height * float64(rows)))
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

func spriteRune(name string) rune {
	switch name {
	case game.DefaultPlayerSprite:
		return 'A'
	default:
		return '*'
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
