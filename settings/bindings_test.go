package settings_test

import (
	"testing"

	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/stretchr/testify/assert"
)

func heldSet(names ...string) func(string) bool {
	set := make(map[string]bool)
	for _, name := range names {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}

func TestBindingsResolve(t *testing.T) {
	bindings := settings.Default().Bindings

	assert.Equal(t, 0, bindings.Resolve(heldSet()).Len())
	assert.Equal(t, game.Keys(game.KeyMoveLeft), bindings.Resolve(heldSet("a")))
	assert.Equal(t, game.Keys(game.KeyMoveRight), bindings.Resolve(heldSet("arrowright")))
	assert.Equal(t,
		game.Keys(game.KeyMoveLeft, game.KeyMoveRight),
		bindings.Resolve(heldSet("arrowleft", "d")),
	)
	assert.Equal(t, 0, bindings.Resolve(heldSet("ArrowLeft")).Len(), "held receives lowercased names")
}

func TestBindingsLookup(t *testing.T) {
	bindings := settings.Bindings{
		game.KeyMoveLeft:  {"A", "ArrowLeft"},
		game.KeyMoveRight: {"D"},
		"fire":            {"a", "Space"},
	}

	assert.Equal(t, []game.Key{"fire", game.KeyMoveLeft}, bindings.Lookup("a"))
	assert.Equal(t, []game.Key{game.KeyMoveRight}, bindings.Lookup("d"))
	assert.Empty(t, bindings.Lookup("x"))
	assert.Equal(t, []string{"a", "arrowleft", "d", "space"}, bindings.Names())
}
