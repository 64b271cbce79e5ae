package protocol

import (
	"testing"

	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func TestRouter_DispatchByType(t *testing.T) {
	r := NewRouter()

	var events []messages.PlayerEvent
	var changes []messages.PlayerRealtimeChange
	r.OnPlayerEvent(func(e messages.PlayerEvent) { events = append(events, e) })
	r.OnRealtimeChange(func(c messages.PlayerRealtimeChange) { changes = append(changes, c) })

	r.DispatchAll([]messages.Packet{
		messages.PlayerEvent{PlayerID: 1, Action: netconfig.ActionLaunchMissile},
		messages.PlayerRealtimeChange{PlayerID: 2, Action: netconfig.ActionJump, Active: true},
		messages.PlayerRealtimeChange{PlayerID: 2, Action: netconfig.ActionJump, Active: false},
	})

	assert.Equal(t, []messages.PlayerEvent{{PlayerID: 1, Action: netconfig.ActionLaunchMissile}}, events)
	assert.Len(t, changes, 2)
	assert.False(t, changes[1].Active)
}

func TestRouter_UnhandledIsDropped(t *testing.T) {
	r := NewRouter()

	assert.False(t, r.Dispatch(messages.PlayerEvent{PlayerID: 1}))
	assert.False(t, r.Dispatch(nil))
}
