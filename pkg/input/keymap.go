// Package input translates keyboard and mouse events into camera motion.
package input

import (
	"fmt"
	"sort"
	"strings"
)

// Action is a logical command a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionDump // log the camera orientation
	ActionReset
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionForward: "forward",
	ActionBack:    "back",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionDump:    "dump",
	ActionReset:   "reset",
	ActionQuit:    "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps an action name to its Action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if i != int(ActionNone) && n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// Keymap binds canonical key names to actions. Key names are lower case,
// e.g. "z", "up", "space", "shift", "escape", "ctrl+c".
type Keymap map[string]Action

// DefaultKeymap binds both the ZQSD and WASD layouts plus the arrow keys.
func DefaultKeymap() Keymap {
	return Keymap{
		"z": ActionForward, "w": ActionForward, "up": ActionForward,
		"s": ActionBack, "down": ActionBack,
		"q": ActionLeft, "a": ActionLeft, "left": ActionLeft,
		"d": ActionRight, "right": ActionRight,
		"space":  ActionUp,
		"shift":  ActionDown,
		"c":      ActionDown,
		"h":      ActionDump,
		"r":      ActionReset,
		"escape": ActionQuit,
		"ctrl+c": ActionQuit,
	}
}

// Lookup returns the action bound to key.
func (k Keymap) Lookup(key string) (Action, bool) {
	a, ok := k[NormalizeKey(key)]
	return a, ok && a != ActionNone
}

// Rebind replaces every binding of action with keys.
func (k Keymap) Rebind(action Action, keys []string) {
	for key, a := range k {
		if a == action {
			delete(k, key)
		}
	}
	for _, key := range keys {
		k[NormalizeKey(key)] = action
	}
}

// Apply rebinds actions from a name -> keys table, as found in config files.
func (k Keymap) Apply(overrides map[string][]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return err
		}
		k.Rebind(action, overrides[name])
	}
	return nil
}

// Keys returns the keys bound to action, sorted.
func (k Keymap) Keys(action Action) []string {
	var keys []string
	for key, a := range k {
		if a == action {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// NormalizeKey folds key names from the different backends onto one form.
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	case "esc":
		return "escape"
	case "shiftleft", "shiftright", "leftshift", "rightshift", "lshift", "rshift":
		return "shift"
	}
	return key
}
