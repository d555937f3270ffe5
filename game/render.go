package game

import (
	"cmp"
	"slices"

	"github.com/plus3/boringgame/ecs"
)

// Renderable is one sprite to draw, in screen pixels with the origin at the
// top left corner and Y pointing down.
type Renderable struct {
	Entity ecs.EntityId
	Sprite string
	X, Y   float64
	Z      float64
	ScaleX float64
	ScaleY float64
}

// Renderables lists every entity with a Transform and a Sprite, sorted by Z
// and then by entity id.
func Renderables(storage *ecs.Storage, viewport Viewport) []Renderable {
	view := ecs.NewView[struct {
		*Transform
		*Sprite
	}](storage)

	out := make([]Renderable, 0, view.Count())
	for id, item := range view.Iter() {
		t := item.Transform
		out = append(out, Renderable{
			Entity: id,
			Sprite: item.Sprite.Name,
			X:      viewport.Width/2 + t.Translation.X,
			Y:      viewport.Height/2 - t.Translation.Y,
			Z:      t.Translation.Z,
			ScaleX: t.Scale.X,
			ScaleY: t.Scale.Y,
		})
	}

	slices.SortStableFunc(out, func(a, b Renderable) int {
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.Entity, b.Entity))
	})
	return out
}
