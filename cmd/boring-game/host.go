package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/boringgame/ecs/debugui/ebiten"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/rs/zerolog"
)

// host adapts a game.Game to ebiten.Game.
type host struct {
	game     *game.Game
	settings *settings.Settings
	sprites  map[string]*ebiten.Image
	fallback *ebiten.Image
	clear    color.Color
	logger   zerolog.Logger

	overlay *debugui_ebiten.Overlay
	watcher *settings.Watcher
}

func newHost(g *game.Game, s *settings.Settings, sprites map[string]*ebiten.Image, logger zerolog.Logger) *host {
	h := &host{
		game:    g,
		sprites: sprites,
		logger:  logger,
	}
	h.apply(s)
	return h
}

// apply switches to new settings. Only bindings, the clear colour, the log
// level and the window title change at runtime.
func (h *host) apply(s *settings.Settings) {
	if h.settings != nil && h.settings.Game != s.Game {
		h.logger.Warn().Msg("game settings changed, restart to apply them")
	}

	h.settings = s
	h.clear = clearColor(s.Window.ClearColor)

	if err := s.Log.ApplyLevel(); err != nil {
		h.logger.Warn().Err(err).Msg("keeping previous log level")
	}
	if unknown := unknownKeys(s.Bindings); len(unknown) > 0 {
		h.logger.Warn().Strs("keys", unknown).Msg("bindings name unknown keys")
	}
	ebiten.SetWindowTitle(s.Window.Title)
}

func (h *host) pollSettings() {
	if h.watcher == nil {
		return
	}
	for {
		select {
		case s, ok := <-h.watcher.Updates:
			if !ok {
				h.watcher = nil
				return
			}
			h.logger.Info().Str("path", h.watcher.Path()).Msg("settings reloaded")
			h.apply(s)
		case err, ok := <-h.watcher.Errors:
			if !ok {
				h.watcher = nil
				return
			}
			h.logger.Error().Err(err).Msg("settings reload failed")
		default:
			return
		}
	}
}

func (h *host) Update() error {
	h.pollSettings()

	var keys game.KeyboardState
	if h.overlay == nil || !h.overlay.WantsKeyboard() {
		keys = sampleKeys(h.settings.Bindings, ebiten.IsKeyPressed)
	}
	h.game.Tick(keys)

	if h.overlay != nil {
		h.overlay.Update(h.game.Config().DeltaTime())
	}
	return nil
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(h.clear)

	for _, r := range h.game.Renderables() {
		img := h.sprite(r.Sprite)
		bounds := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
		op.GeoM.Scale(r.ScaleX, r.ScaleY)
		op.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(img, op)
	}

	if h.overlay != nil {
		h.overlay.Draw(screen)
	}
}

// sprite returns the image loaded for name, or a placeholder when nothing
// was loaded for it.
func (h *host) sprite(name string) *ebiten.Image {
	if img, ok := h.sprites[name]; ok {
		return img
	}
	if h.fallback == nil {
		h.logger.Warn().Str("sprite", name).Msg("sprite not loaded, using placeholder")
		h.fallback = placeholder()
	}
	return h.fallback
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.overlay != nil {
		h.overlay.Layout(outsideWidth, outsideHeight)
	}
	viewport := h.game.Viewport()
	return int(viewport.Width), int(viewport.Height)
}

func clearColor(rgb [3]float64) color.Color {
	return color.RGBA{
		R: uint8(rgb[0]*255 + 0.5),
		G: uint8(rgb[1]*255 + 0.5),
		B: uint8(rgb[2]*255 + 0.5),
		A: 0xff,
	}
}
