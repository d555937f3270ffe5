package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// holdTracker turns key presses into held keys. Terminals report presses
// and auto-repeats but never releases, so a key stays held for a number of
// ticks after its last press.
type holdTracker struct {
	hold      int
	remaining map[string]int
}

func newHoldTracker(hold int) *holdTracker {
	return &holdTracker{
		hold:      max(hold, 1),
		remaining: make(map[string]int),
	}
}

func (h *holdTracker) Press(name string) {
	if name == "" {
		return
	}
	h.remaining[name] = h.hold
}

// Held reports whether the key is still held. It matches Bindings.Resolve.
func (h *holdTracker) Held(name string) bool {
	return h.remaining[name] > 0
}

// Tick ages every held key by one tick.
func (h *holdTracker) Tick() {
	for name, left := range h.remaining {
		if left <= 1 {
			delete(h.remaining, name)
			continue
		}
		h.remaining[name] = left - 1
	}
}

// keyName returns the binding name of a terminal key, lowercased like
// binding lookups, or "" when the key cannot be bound.
func keyName(key tcell.Key, r rune) string {
	switch key {
	case tcell.KeyLeft:
		return "arrowleft"
	case tcell.KeyRight:
		return "arrowright"
	case tcell.KeyUp:
		return "arrowup"
	case tcell.KeyDown:
		return "arrowdown"
	case tcell.KeyRune:
		if r == ' ' {
			return "space"
		}
		return strings.ToLower(string(r))
	default:
		return ""
	}
}

// isQuit reports whether the key ends the program.
func isQuit(key tcell.Key, r rune) bool {
	return key == tcell.KeyEscape || key == tcell.KeyCtrlC || (key == tcell.KeyRune && r == 'q')
}
