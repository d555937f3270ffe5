package main

import (
	"errors"
	"image/color"
	_ "image/png"
	"io/fs"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/boringgame/settings"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const placeholderSize = 32

var placeholderColor = color.RGBA{R: 0xe0, G: 0x40, B: 0xa0, A: 0xff}

// loadSprites loads every sprite the settings name, keyed by file name. A
// missing file is replaced by a placeholder square so the game stays playable.
func loadSprites(s *settings.Settings, logger zerolog.Logger) (map[string]*ebiten.Image, error) {
	sprites := make(map[string]*ebiten.Image)

	for _, name := range s.SpriteNames() {
		path := filepath.Join(s.Assets.Dir, name)
		img, _, err := ebitenutil.NewImageFromFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Warn().Str("path", path).Msg("sprite missing, using placeholder")
			img = placeholder()
		case err != nil:
			return nil, eris.Wrapf(err, "loading sprite %s", path)
		default:
			logger.Debug().
				Str("path", path).
				Int("width", img.Bounds().Dx()).
				Int("height", img.Bounds().Dy()).
				Msg("sprite loaded")
		}

		sprites[name] = img
	}

	return sprites, nil
}

func placeholder() *ebiten.Image {
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	img.Fill(placeholderColor)
	return img
}
