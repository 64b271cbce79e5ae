package input

// PressedKeys is a KeyState backed by a set. Scripted and replayed input
// drive a KeyBinding through it.
type PressedKeys map[Key]bool

func (p PressedKeys) IsKeyPressed(key Key) bool {
	return p[key]
}

// Press marks key as held and returns the matching edge event.
func (p PressedKeys) Press(key Key) KeyEvent {
	p[key] = true
	return KeyEvent{Key: key, Pressed: true}
}

// Release marks key as up and returns the matching edge event.
func (p PressedKeys) Release(key Key) KeyEvent {
	delete(p, key)
	return KeyEvent{Key: key, Pressed: false}
}
