// Package input resolves raw key codes to logical player actions.
package input

import (
	"sort"

	"github.com/automoto/skirmish/shared/netconfig"
)

// Key is a raw hardware key code. Values match ebiten.Key, so the scene layer
// converts with a plain cast.
type Key int

// KeyEvent is a press or release edge for one key.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// KeyState reports the live keyboard state.
type KeyState interface {
	IsKeyPressed(key Key) bool
}

// KeyBinding maps keys to actions for one local player.
type KeyBinding struct {
	keyMap map[Key]netconfig.ActionID
	state  KeyState
}

// NewKeyBinding copies bindings; entries with unknown actions are skipped.
func NewKeyBinding(state KeyState, bindings map[Key]netconfig.ActionID) *KeyBinding {
	kb := &KeyBinding{
		keyMap: make(map[Key]netconfig.ActionID, len(bindings)),
		state:  state,
	}
	for key, action := range bindings {
		if action.Valid() {
			kb.keyMap[key] = action
		}
	}
	return kb
}

// CheckAction returns the action bound to key, if any.
func (kb *KeyBinding) CheckAction(key Key) (netconfig.ActionID, bool) {
	action, ok := kb.keyMap[key]
	return action, ok
}

// IsRealtime reports whether key is bound to a realtime action.
func (kb *KeyBinding) IsRealtime(key Key) bool {
	action, ok := kb.keyMap[key]
	return ok && netconfig.IsRealtimeAction(action)
}

// RealtimeActions returns the realtime actions whose keys are held right now,
// in ascending action order. It reads the keyboard on every call.
func (kb *KeyBinding) RealtimeActions() []netconfig.ActionID {
	if kb.state == nil {
		return nil
	}

	var held [netconfig.ActionCount]bool
	for key, action := range kb.keyMap {
		if netconfig.IsRealtimeAction(action) && kb.state.IsKeyPressed(key) {
			held[action] = true
		}
	}

	var out []netconfig.ActionID
	for a, on := range held {
		if on {
			out = append(out, netconfig.ActionID(a))
		}
	}
	return out
}

// AssignKey binds key to action, dropping the action's previous keys and the
// key's previous action.
func (kb *KeyBinding) AssignKey(action netconfig.ActionID, key Key) {
	if !action.Valid() {
		return
	}
	for k, a := range kb.keyMap {
		if a == action {
			delete(kb.keyMap, k)
		}
	}
	kb.keyMap[key] = action
}

// AssignedKey returns the lowest key bound to action.
func (kb *KeyBinding) AssignedKey(action netconfig.ActionID) (Key, bool) {
	keys := kb.keysFor(action)
	if len(keys) == 0 {
		return 0, false
	}
	return keys[0], true
}

// Bindings returns a copy of the key map.
func (kb *KeyBinding) Bindings() map[Key]netconfig.ActionID {
	out := make(map[Key]netconfig.ActionID, len(kb.keyMap))
	for k, a := range kb.keyMap {
		out[k] = a
	}
	return out
}

func (kb *KeyBinding) keysFor(action netconfig.ActionID) []Key {
	var keys []Key
	for k, a := range kb.keyMap {
		if a == action {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
