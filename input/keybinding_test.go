package input

import (
	"testing"

	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	keyA Key = iota + 10
	keyD
	keyW
	keySpace
	keyM
	keyUnbound
)

func newTestBinding(keys PressedKeys) *KeyBinding {
	return NewKeyBinding(keys, map[Key]netconfig.ActionID{
		keyA:     netconfig.ActionMoveLeft,
		keyD:     netconfig.ActionMoveRight,
		keyW:     netconfig.ActionJump,
		keySpace: netconfig.ActionFire,
		keyM:     netconfig.ActionLaunchMissile,
	})
}

func TestCheckAction(t *testing.T) {
	kb := newTestBinding(PressedKeys{})

	action, ok := kb.CheckAction(keyW)
	assert.True(t, ok)
	assert.Equal(t, netconfig.ActionJump, action)

	_, ok = kb.CheckAction(keyUnbound)
	assert.False(t, ok)

	assert.True(t, kb.IsRealtime(keyA))
	assert.False(t, kb.IsRealtime(keyM))
	assert.False(t, kb.IsRealtime(keyUnbound))
}

func TestRealtimeActions_Snapshot(t *testing.T) {
	keys := PressedKeys{}
	kb := newTestBinding(keys)

	assert.Empty(t, kb.RealtimeActions())

	keys.Press(keySpace)
	keys.Press(keyA)
	keys.Press(keyM) // discrete, never reported
	assert.Equal(t, []netconfig.ActionID{netconfig.ActionMoveLeft, netconfig.ActionFire}, kb.RealtimeActions())

	keys.Release(keyA)
	assert.Equal(t, []netconfig.ActionID{netconfig.ActionFire}, kb.RealtimeActions())
}

func TestRealtimeActions_DeduplicatesSharedAction(t *testing.T) {
	keys := PressedKeys{}
	kb := newTestBinding(keys)
	kb.keyMap[keyUnbound] = netconfig.ActionMoveLeft

	keys.Press(keyA)
	keys.Press(keyUnbound)
	assert.Equal(t, []netconfig.ActionID{netconfig.ActionMoveLeft}, kb.RealtimeActions())
}

func TestAssignKey(t *testing.T) {
	kb := newTestBinding(PressedKeys{})

	kb.AssignKey(netconfig.ActionJump, keySpace)

	action, ok := kb.CheckAction(keySpace)
	require.True(t, ok)
	assert.Equal(t, netconfig.ActionJump, action)

	_, ok = kb.CheckAction(keyW)
	assert.False(t, ok, "old jump key should be unbound")

	key, ok := kb.AssignedKey(netconfig.ActionJump)
	require.True(t, ok)
	assert.Equal(t, keySpace, key)

	_, ok = kb.AssignedKey(netconfig.ActionFire)
	assert.False(t, ok, "fire lost its only key")
}

func TestNewKeyBinding_SkipsUnknownActions(t *testing.T) {
	kb := NewKeyBinding(nil, map[Key]netconfig.ActionID{keyA: netconfig.ActionCount})

	_, ok := kb.CheckAction(keyA)
	assert.False(t, ok)
	assert.Empty(t, kb.RealtimeActions())
}

func TestBindingsRoundTrip(t *testing.T) {
	kb := newTestBinding(PressedKeys{})

	data, err := MarshalBindings(kb.Bindings())
	require.NoError(t, err)

	got, err := UnmarshalBindings(data)
	require.NoError(t, err)
	assert.Equal(t, kb.Bindings(), got)
}

func TestUnmarshalBindings_Errors(t *testing.T) {
	_, err := UnmarshalBindings([]byte("{"))
	assert.Error(t, err)

	_, err = UnmarshalBindings([]byte(`{"version":99,"keys":{}}`))
	assert.Error(t, err)

	got, err := UnmarshalBindings([]byte(`{"version":1,"keys":{"Teleport":[1],"Jump":[2]}}`))
	require.NoError(t, err)
	assert.Equal(t, map[Key]netconfig.ActionID{2: netconfig.ActionJump}, got)
}
