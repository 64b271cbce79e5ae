package scenes

import (
	"fmt"

	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Keyboard adapts ebiten's keyboard to the input package.
type Keyboard struct {
	pressed  []ebiten.Key
	released []ebiten.Key
	events   []input.KeyEvent
}

func (k *Keyboard) IsKeyPressed(key input.Key) bool {
	return ebiten.IsKeyPressed(ebiten.Key(key))
}

// Events returns this frame's key edges, presses before releases. The slice
// is reused on the next call.
func (k *Keyboard) Events() []input.KeyEvent {
	k.pressed = inpututil.AppendJustPressedKeys(k.pressed[:0])
	k.released = inpututil.AppendJustReleasedKeys(k.released[:0])

	k.events = k.events[:0]
	for _, key := range k.pressed {
		k.events = append(k.events, input.KeyEvent{Key: input.Key(key), Pressed: true})
	}
	for _, key := range k.released {
		k.events = append(k.events, input.KeyEvent{Key: input.Key(key), Pressed: false})
	}
	return k.events
}

// ParseControls turns configured action -> key name lists into bindings.
// Key names are ebiten's ("A", "ArrowLeft", "Space").
func ParseControls(controls map[string][]string) (map[input.Key]netconfig.ActionID, error) {
	out := make(map[input.Key]netconfig.ActionID)
	for name, keys := range controls {
		action, ok := netconfig.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("controls: unknown action %q", name)
		}
		for _, keyName := range keys {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(keyName)); err != nil {
				return nil, fmt.Errorf("controls: %s: %w", name, err)
			}
			out[input.Key(key)] = action
		}
	}
	return out, nil
}

// KeyName renders a bound key for the HUD.
func KeyName(key input.Key) string {
	return ebiten.Key(key).String()
}
