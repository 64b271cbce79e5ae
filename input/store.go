package input

import (
	"encoding/json"
	"fmt"

	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/quasilyte/gdata"
)

const bindingsItem = "keybindings"

// savedBindings is keyed by action name so reordering ActionID does not
// scramble stored controls.
type savedBindings struct {
	Version int              `json:"version"`
	Keys    map[string][]Key `json:"keys"`
}

const savedBindingsVersion = 1

// Store persists key bindings between runs.
type Store struct {
	m *gdata.Manager
}

func OpenStore(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open binding store: %w", err)
	}
	return &Store{m: m}, nil
}

// Load returns the saved bindings, or nil when nothing was saved yet.
func (s *Store) Load() (map[Key]netconfig.ActionID, error) {
	data, err := s.m.LoadItem(bindingsItem)
	if err != nil {
		return nil, fmt.Errorf("load bindings: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return UnmarshalBindings(data)
}

func (s *Store) Save(kb *KeyBinding) error {
	data, err := MarshalBindings(kb.Bindings())
	if err != nil {
		return err
	}
	if err := s.m.SaveItem(bindingsItem, data); err != nil {
		return fmt.Errorf("save bindings: %w", err)
	}
	return nil
}

func MarshalBindings(bindings map[Key]netconfig.ActionID) ([]byte, error) {
	saved := savedBindings{
		Version: savedBindingsVersion,
		Keys:    make(map[string][]Key),
	}
	kb := &KeyBinding{keyMap: bindings}
	for _, a := range netconfig.Actions() {
		if keys := kb.keysFor(a); len(keys) > 0 {
			saved.Keys[a.String()] = keys
		}
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return nil, fmt.Errorf("marshal bindings: %w", err)
	}
	return data, nil
}

// UnmarshalBindings ignores actions it does not know.
func UnmarshalBindings(data []byte) (map[Key]netconfig.ActionID, error) {
	var saved savedBindings
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("unmarshal bindings: %w", err)
	}
	if saved.Version != savedBindingsVersion {
		return nil, fmt.Errorf("unmarshal bindings: unsupported version %d", saved.Version)
	}

	out := make(map[Key]netconfig.ActionID)
	for name, keys := range saved.Keys {
		action, ok := netconfig.ParseAction(name)
		if !ok {
			continue
		}
		for _, k := range keys {
			out[k] = action
		}
	}
	return out, nil
}
