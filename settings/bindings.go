package settings

import (
	"sort"
	"strings"

	"github.com/plus3/boringgame/game"
	"github.com/rotisserie/eris"
)

// Bindings maps a logical key to the names of the physical keys that hold
// it. Physical key names are matched case-insensitively.
type Bindings map[game.Key][]string

func (b Bindings) Validate() error {
	for key, names := range b {
		if key == "" {
			return eris.Wrap(ErrInvalid, "binding with an empty logical key")
		}
		for _, name := range names {
			if strings.TrimSpace(name) == "" {
				return eris.Wrapf(ErrInvalid, "binding %q has an empty key name", key)
			}
		}
	}
	return nil
}

// Resolve builds the keyboard state from the physical keys for which held
// returns true. held receives names lowercased.
func (b Bindings) Resolve(held func(name string) bool) game.KeyboardState {
	var state game.KeyboardState
	for key, names := range b {
		for _, name := range names {
			if held(strings.ToLower(name)) {
				state.Press(key)
				break
			}
		}
	}
	return state
}

// Lookup returns the logical keys bound to the physical key name, sorted.
func (b Bindings) Lookup(name string) []game.Key {
	var keys []game.Key
	for key, names := range b {
		for _, n := range names {
			if strings.EqualFold(n, name) {
				keys = append(keys, key)
				break
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Names returns every physical key name in use, lowercased and sorted.
func (b Bindings) Names() []string {
	seen := make(map[string]bool)
	for _, names := range b {
		for _, name := range names {
			seen[strings.ToLower(name)] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
