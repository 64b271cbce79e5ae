package player

import (
	"testing"
	"time"

	"github.com/automoto/skirmish/commands"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

const (
	keyLeft input.Key = iota + 1
	keyRight
	keyJump
	keyFire
	keyMissile
	keyUnbound
)

type fakeSender struct {
	sent []messages.Packet
}

func (f *fakeSender) Send(p messages.Packet) {
	f.sent = append(f.sent, p)
}

func newBinding(keys input.PressedKeys) *input.KeyBinding {
	return input.NewKeyBinding(keys, map[input.Key]netconfig.ActionID{
		keyLeft:    netconfig.ActionMoveLeft,
		keyRight:   netconfig.ActionMoveRight,
		keyJump:    netconfig.ActionJump,
		keyFire:    netconfig.ActionFire,
		keyMissile: netconfig.ActionLaunchMissile,
	})
}

func TestNew_ModeValidation(t *testing.T) {
	kb := newBinding(input.PressedKeys{})
	s := &fakeSender{}

	tests := []struct {
		name    string
		mode    Mode
		binding *input.KeyBinding
		sender  Sender
		wantErr bool
	}{
		{"local", ModeLocal, kb, nil, false},
		{"local with sender", ModeLocal, kb, s, true},
		{"local without binding", ModeLocal, nil, nil, true},
		{"networked", ModeLocalNetworked, kb, s, false},
		{"networked without sender", ModeLocalNetworked, kb, nil, true},
		{"remote", ModeRemote, nil, s, false},
		{"remote with binding", ModeRemote, kb, s, true},
		{"remote without sender", ModeRemote, nil, nil, true},
		{"unknown mode", Mode(9), kb, s, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.mode, 1, tt.binding, tt.sender)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMode)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mode, c.Mode())
			assert.Equal(t, tt.mode != ModeRemote, c.IsLocal())
		})
	}
}

func TestActionTable_EveryActionBound(t *testing.T) {
	table, err := newActionTable(3)
	require.NoError(t, err)

	for _, a := range netconfig.Actions() {
		cmd, ok := table.command(a)
		require.True(t, ok, a.String())
		assert.NotNil(t, cmd.Action, a.String())
		assert.Equal(t, netconfig.CategoryPlayerCharacter, cmd.Category, a.String())
	}

	_, ok := table.command(netconfig.ActionCount)
	assert.False(t, ok)
}

func TestLocal_DiscretePressEnqueuesOnce(t *testing.T) {
	keys := input.PressedKeys{}
	c, err := NewLocal(5, newBinding(keys))
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyMissile), q)
	require.Equal(t, 1, q.Len())

	cmd := q.Pending()[0]
	assert.Equal(t, netconfig.CategoryPlayerCharacter, cmd.Category)
	assert.Equal(t, MissileTrigger{Target: 5}, cmd.Action)

	c.HandleEvent(keys.Release(keyMissile), q)
	assert.Equal(t, 1, q.Len(), "release enqueues nothing")
}

func TestLocal_UnboundKeyIsNoop(t *testing.T) {
	keys := input.PressedKeys{}
	c, err := NewLocal(1, newBinding(keys))
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyUnbound), q)
	c.HandleRealtimeInput(q)
	assert.True(t, q.IsEmpty())
}

func TestLocalNetworked_DiscretePressSendsEventOnly(t *testing.T) {
	keys := input.PressedKeys{}
	s := &fakeSender{}
	c, err := NewLocalNetworked(5, newBinding(keys), s)
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyMissile), q)

	assert.True(t, q.IsEmpty())
	assert.Equal(t, []messages.Packet{
		messages.PlayerEvent{PlayerID: 5, Action: netconfig.ActionLaunchMissile},
	}, s.sent)

	c.HandleEvent(keys.Release(keyMissile), q)
	assert.Len(t, s.sent, 1)
}

func TestLocalNetworked_RealtimeEdgesSendChanges(t *testing.T) {
	keys := input.PressedKeys{}
	s := &fakeSender{}
	c, err := NewLocalNetworked(2, newBinding(keys), s)
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyJump), q)
	c.HandleEvent(keys.Release(keyJump), q)

	assert.True(t, q.IsEmpty(), "edges never enqueue realtime commands")
	assert.Equal(t, []messages.Packet{
		messages.PlayerRealtimeChange{PlayerID: 2, Action: netconfig.ActionJump, Active: true},
		messages.PlayerRealtimeChange{PlayerID: 2, Action: netconfig.ActionJump, Active: false},
	}, s.sent)
}

func TestLocal_RealtimeEdgesSendNothing(t *testing.T) {
	keys := input.PressedKeys{}
	c, err := NewLocal(2, newBinding(keys))
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyLeft), q)
	assert.True(t, q.IsEmpty())
}

func TestLocal_HeldKeyFiresEveryTick(t *testing.T) {
	keys := input.PressedKeys{}
	c, err := NewLocal(1, newBinding(keys))
	require.NoError(t, err)
	q := commands.NewQueue()

	keys.Press(keyRight)
	const ticks = 7
	for i := 0; i < ticks; i++ {
		c.HandleRealtimeInput(q)
	}

	assert.Equal(t, ticks, q.Len())
	for _, cmd := range q.Pending() {
		assert.Equal(t, CharacterMover{VelX: 1, Target: 1}, cmd.Action)
	}
}

func TestLocalNetworked_HeldKeyStillPolled(t *testing.T) {
	keys := input.PressedKeys{}
	c, err := NewLocalNetworked(1, newBinding(keys), &fakeSender{})
	require.NoError(t, err)
	q := commands.NewQueue()

	keys.Press(keyFire)
	c.HandleRealtimeInput(q)
	c.HandleRealtimeNetworkInput(q)

	assert.Equal(t, 1, q.Len())
}

func TestRemote_RealtimeChangeDrivesPolling(t *testing.T) {
	c, err := NewRemote(9, &fakeSender{})
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleNetworkRealtimeChange(netconfig.ActionJump, true)
	assert.True(t, q.IsEmpty(), "notification alone enqueues nothing")

	for i := 0; i < 3; i++ {
		c.HandleRealtimeNetworkInput(q)
		assert.Equal(t, i+1, q.Len())
	}
	for _, cmd := range q.Pending() {
		assert.Equal(t, JumpTrigger{VelY: jumpImpulse, Target: 9}, cmd.Action)
	}

	c.HandleNetworkRealtimeChange(netconfig.ActionJump, false)
	c.HandleRealtimeNetworkInput(q)
	assert.Equal(t, 3, q.Len())
}

func TestRemote_IgnoresLocalPolling(t *testing.T) {
	c, err := NewRemote(9, &fakeSender{})
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleRealtimeInput(q)
	c.HandleEvent(input.KeyEvent{Key: keyMissile, Pressed: true}, q)
	assert.True(t, q.IsEmpty())
}

func TestRemote_DiscreteProxyEntriesNeverPolled(t *testing.T) {
	c, err := NewRemote(9, &fakeSender{})
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleNetworkRealtimeChange(netconfig.ActionLaunchMissile, true)
	c.HandleNetworkRealtimeChange(netconfig.ActionCount, true)
	c.HandleRealtimeNetworkInput(q)

	assert.True(t, q.IsEmpty())
}

func TestHandleNetworkEvent(t *testing.T) {
	c, err := NewRemote(4, &fakeSender{})
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleNetworkEvent(netconfig.ActionLaunchMissile, q)
	c.HandleNetworkEvent(netconfig.ActionID(-3), q)

	require.Equal(t, 1, q.Len())
	assert.Equal(t, MissileTrigger{Target: 4}, q.Pending()[0].Action)
}

func TestDisableAllRealtimeActions_Remote(t *testing.T) {
	s := &fakeSender{}
	c, err := NewRemote(6, s)
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleNetworkRealtimeChange(netconfig.ActionFire, true)
	c.HandleNetworkRealtimeChange(netconfig.ActionMoveLeft, true)
	c.HandleNetworkRealtimeChange(netconfig.ActionMoveLeft, true)

	c.DisableAllRealtimeActions()

	assert.Equal(t, []messages.Packet{
		messages.PlayerRealtimeChange{PlayerID: 6, Action: netconfig.ActionMoveLeft, Active: false},
		messages.PlayerRealtimeChange{PlayerID: 6, Action: netconfig.ActionFire, Active: false},
	}, s.sent)

	c.HandleRealtimeNetworkInput(q)
	assert.True(t, q.IsEmpty())
	assert.False(t, c.ProxyActive(netconfig.ActionFire))
}

func TestDisableAllRealtimeActions_LocalNetworked(t *testing.T) {
	keys := input.PressedKeys{}
	s := &fakeSender{}
	c, err := NewLocalNetworked(1, newBinding(keys), s)
	require.NoError(t, err)
	q := commands.NewQueue()

	c.HandleEvent(keys.Press(keyRight), q)
	c.HandleEvent(keys.Press(keyFire), q)
	s.sent = nil

	c.DisableAllRealtimeActions()

	assert.Equal(t, []messages.Packet{
		messages.PlayerRealtimeChange{PlayerID: 1, Action: netconfig.ActionMoveRight, Active: false},
		messages.PlayerRealtimeChange{PlayerID: 1, Action: netconfig.ActionFire, Active: false},
	}, s.sent)
}

func TestDisableAllRealtimeActions_LocalSendsNothing(t *testing.T) {
	c, err := NewLocal(1, newBinding(input.PressedKeys{}))
	require.NoError(t, err)

	assert.NotPanics(t, c.DisableAllRealtimeActions)
}

func TestMissionStatus(t *testing.T) {
	c, err := NewLocal(1, newBinding(input.PressedKeys{}))
	require.NoError(t, err)

	assert.Equal(t, netconfig.MissionRunning, c.MissionStatus())
	c.SetMissionStatus(netconfig.MissionFailure)
	assert.Equal(t, netconfig.MissionFailure, c.MissionStatus())
}

// Commands broadcast to the whole category but only move their own player.
func TestCommands_SelfFilterByIdentifier(t *testing.T) {
	w := donburi.NewWorld()
	spawn := func(id netconfig.PlayerID) *donburi.Entry {
		e := w.Entry(w.Create(components.Character, components.Physics, components.Category))
		components.Character.SetValue(e, components.CharacterData{ID: id, MaxSpeed: 4, Grounded: true})
		components.Category.SetValue(e, components.CategoryData{Mask: netconfig.CategoryPlayerCharacter})
		return e
	}
	mine := spawn(1)
	theirs := spawn(2)

	keys := input.PressedKeys{}
	c, err := NewLocal(1, newBinding(keys))
	require.NoError(t, err)
	q := commands.NewQueue()

	keys.Press(keyLeft)
	keys.Press(keyJump)
	c.HandleRealtimeInput(q)
	c.HandleEvent(keys.Press(keyMissile), q)
	q.Distribute(w, time.Second/60)

	p := components.Physics.Get(mine)
	assert.Equal(t, -4.0, p.AccelX)
	assert.Equal(t, jumpImpulse, p.AccelY)
	ch := components.Character.Get(mine)
	assert.False(t, ch.Grounded)
	assert.True(t, ch.MissileRequested)
	assert.Equal(t, -1.0, ch.Facing)

	assert.Zero(t, components.Physics.Get(theirs).AccelX)
	assert.True(t, components.Character.Get(theirs).Grounded)
	assert.False(t, components.Character.Get(theirs).MissileRequested)
}

func TestJumpTrigger_RequiresGround(t *testing.T) {
	w := donburi.NewWorld()
	e := w.Entry(w.Create(components.Character, components.Physics))
	components.Character.SetValue(e, components.CharacterData{ID: 1, Grounded: false})

	JumpTrigger{VelY: jumpImpulse, Target: 1}.Apply(e, 0)
	assert.Zero(t, components.Physics.Get(e).AccelY)
}

func TestReportHeldRealtimeActions(t *testing.T) {
	keys := input.PressedKeys{}
	s := &fakeSender{}
	c, err := NewLocalNetworked(1, newBinding(keys), s)
	require.NoError(t, err)

	keys.Press(keyFire)
	keys.Press(keyLeft)
	keys.Press(keyMissile)
	c.ReportHeldRealtimeActions()

	assert.Equal(t, []messages.Packet{
		messages.PlayerRealtimeChange{PlayerID: 1, Action: netconfig.ActionMoveLeft, Active: true},
		messages.PlayerRealtimeChange{PlayerID: 1, Action: netconfig.ActionFire, Active: true},
	}, s.sent)
	assert.True(t, c.ProxyActive(netconfig.ActionMoveLeft))
	assert.True(t, c.ProxyActive(netconfig.ActionFire))
}

func TestReportHeldRealtimeActions_OnlyLocalNetworked(t *testing.T) {
	keys := input.PressedKeys{}
	keys.Press(keyRight)

	local, err := NewLocal(1, newBinding(keys))
	require.NoError(t, err)
	assert.NotPanics(t, local.ReportHeldRealtimeActions)
	assert.False(t, local.ProxyActive(netconfig.ActionMoveRight))

	s := &fakeSender{}
	remote, err := NewRemote(2, s)
	require.NoError(t, err)
	remote.ReportHeldRealtimeActions()
	assert.Empty(t, s.sent)
}

func TestClearProxies_KeepsEntrySet(t *testing.T) {
	s := &fakeSender{}
	c, err := NewRemote(2, s)
	require.NoError(t, err)

	c.HandleNetworkRealtimeChange(netconfig.ActionJump, true)
	c.ClearProxies()
	assert.False(t, c.ProxyActive(netconfig.ActionJump))
	assert.Empty(t, s.sent, "clearing notifies nobody")

	c.DisableAllRealtimeActions()
	assert.Equal(t, []messages.Packet{
		messages.PlayerRealtimeChange{PlayerID: 2, Action: netconfig.ActionJump, Active: false},
	}, s.sent)
}
