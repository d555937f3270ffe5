package game

import (
	"slices"
	"strings"
)

// Key is a logical key. Hosts translate physical keys into these.
type Key string

const (
	KeyMoveLeft  Key = "move-left"
	KeyMoveRight Key = "move-right"
)

// KeyboardState is the set of logical keys held down, sampled by the host
// once per tick. The zero value holds no keys.
type KeyboardState struct {
	held map[Key]struct{}
}

// Keys returns a KeyboardState holding the given keys.
func Keys(keys ...Key) KeyboardState {
	var state KeyboardState
	for _, key := range keys {
		state.Press(key)
	}
	return state
}

// Press marks key as held.
func (k *KeyboardState) Press(key Key) {
	if k.held == nil {
		k.held = make(map[Key]struct{})
	}
	k.held[key] = struct{}{}
}

// Release marks key as no longer held.
func (k *KeyboardState) Release(key Key) {
	delete(k.held, key)
}

// Pressed reports whether key is held.
func (k KeyboardState) Pressed(key Key) bool {
	_, ok := k.held[key]
	return ok
}

// Clone returns a copy that does not share the held set with k.
func (k KeyboardState) Clone() KeyboardState {
	var clone KeyboardState
	for key := range k.held {
		clone.Press(key)
	}
	return clone
}

// Len returns the number of held keys.
func (k KeyboardState) Len() int {
	return len(k.held)
}

// Held returns the held keys in sorted order.
func (k KeyboardState) Held() []Key {
	keys := make([]Key, 0, len(k.held))
	for key := range k.held {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (k KeyboardState) String() string {
	held := k.Held()
	names := make([]string, len(held))
	for i, key := range held {
		names[i] = string(key)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Direction resolves the horizontal direction requested by keys. Left wins
// when both directions are held.
func Direction(keys KeyboardState) float64 {
	switch {
	case keys.Pressed(KeyMoveLeft):
		return -1
	case keys.Pressed(KeyMoveRight):
		return 1
	default:
		return 0
	}
}
