package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/boringgame/game"
	"github.com/plus3/boringgame/settings"
	"github.com/stretchr/testify/assert"
)

func TestHoldTrackerDecay(t *testing.T) {
	held := newHoldTracker(3)
	held.Press("a")

	for tick := range 3 {
		assert.True(t, held.Held("a"), "tick %d", tick)
		held.Tick()
	}
	assert.False(t, held.Held("a"))
}

func TestHoldTrackerRepeatExtends(t *testing.T) {
	held := newHoldTracker(2)
	held.Press("arrowleft")
	held.Tick()
	held.Press("arrowleft")
	held.Tick()

	assert.True(t, held.Held("arrowleft"))
	held.Tick()
	assert.False(t, held.Held("arrowleft"))
}

func TestHoldTrackerIgnoresUnboundKeys(t *testing.T) {
	held := newHoldTracker(0)
	held.Press("")
	assert.False(t, held.Held(""))

	held.Press("d")
	assert.True(t, held.Held("d"))
	held.Tick()
	assert.False(t, held.Held("d"))
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "arrowleft", keyName(tcell.KeyLeft, 0))
	assert.Equal(t, "arrowright", keyName(tcell.KeyRight, 0))
	assert.Equal(t, "a", keyName(tcell.KeyRune, 'A'))
	assert.Equal(t, "space", keyName(tcell.KeyRune, ' '))
	assert.Equal(t, "", keyName(tcell.KeyF1, 0))
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.KeyEscape, 0))
	assert.True(t, isQuit(tcell.KeyCtrlC, 0))
	assert.True(t, isQuit(tcell.KeyRune, 'q'))
	assert.False(t, isQuit(tcell.KeyRune, 'a'))
}

func TestHeldKeysResolveThroughBindings(t *testing.T) {
	bindings := settings.Default().Bindings
	held := newHoldTracker(1)

	held.Press(keyName(tcell.KeyRune, 'D'))
	assert.Equal(t, game.Keys(game.KeyMoveRight), bindings.Resolve(held.Held))

	held.Tick()
	assert.Equal(t, 0, bindings.Resolve(held.Held).Len())
}

func TestToCell(t *testing.T) {
	viewport := game.Viewport{Width: 600, Height: 600}

	col, row, ok := toCell(game.Renderable{X: 300, Y: 576.25}, viewport, 80, 24)
	assert.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, 23, row)

	_, _, ok = toCell(game.Renderable{X: -1, Y: 10}, viewport, 80, 24)
	assert.False(t, ok)
	_, _, ok = toCell(game.Renderable{X: 10, Y: -0.5}, viewport, 80, 24)
	assert.False(t, ok)
	col, row, ok = toCell(game.Renderable{X: 0, Y: 0}, viewport, 80, 24)
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
	_, _, ok = toCell(game.Renderable{X: 600, Y: 10}, viewport, 80, 24)
	assert.False(t, ok)
	_, _, ok = toCell(game.Renderable{X: 10, Y: 10}, viewport, 0, 24)
	assert.False(t, ok)
}
