package main

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
)

// keysByName indexes ebiten keys by their lowercased name, e.g. "arrowleft".
var keysByName = func() map[string]ebiten.Key {
	names := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		names[strings.ToLower(k.String())] = k
	}
	return names
}()

// sampleKeys resolves bindings against the physical keys for which pressed
// returns true. Unknown key names never count as held.
func sampleKeys(bindings settings.Bindings, pressed func(ebiten.Key) bool) game.KeyboardState {
	return bindings.Resolve(func(name string) bool {
		key, ok := keysByName[name]
		return ok && pressed(key)
	})
}

// unknownKeys returns the bound key names ebiten does not know.
func unknownKeys(bindings settings.Bindings) []string {
	var unknown []string
	for _, name := range bindings.Names() {
		if _, ok := keysByName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
