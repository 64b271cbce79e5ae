// Package netconfig defines lightweight types shared between client and relay
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the relay binary stays headless.
package netconfig

import (
	"fmt"
	"strings"
)

// PlayerID identifies one connected participant. Every command carries it so
// one shared command queue can drive several characters.
type PlayerID int32

// ActionID represents a logical player action. Values are sent on the wire.
type ActionID int32

const (
	ActionMoveLeft ActionID = iota
	ActionMoveRight
	ActionJump
	ActionFire
	ActionLaunchMissile
	ActionCount // Must be last - used for array sizing
)

// realtimeActions is consulted identically by the sending and receiving side.
var realtimeActions = [ActionCount]bool{
	ActionMoveLeft:      true,
	ActionMoveRight:     true,
	ActionJump:          true,
	ActionFire:          true,
	ActionLaunchMissile: false,
}

var actionNames = [ActionCount]string{
	ActionMoveLeft:      "MoveLeft",
	ActionMoveRight:     "MoveRight",
	ActionJump:          "Jump",
	ActionFire:          "Fire",
	ActionLaunchMissile: "LaunchMissile",
}

// IsRealtimeAction reports whether an action applies every tick while held
// rather than once per press. Unknown actions are never realtime.
func IsRealtimeAction(a ActionID) bool {
	if !a.Valid() {
		return false
	}
	return realtimeActions[a]
}

// Valid reports whether a is one of the known actions.
func (a ActionID) Valid() bool {
	return a >= 0 && a < ActionCount
}

func (a ActionID) String() string {
	if !a.Valid() {
		return fmt.Sprintf("ActionID(%d)", int32(a))
	}
	return actionNames[a]
}

// Actions returns every known action in ascending order.
func Actions() []ActionID {
	out := make([]ActionID, 0, ActionCount)
	for a := ActionID(0); a < ActionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction maps an action name back to its ID, ignoring case.
func ParseAction(name string) (ActionID, bool) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return ActionID(a), true
		}
	}
	return 0, false
}

// MissionStatus tracks how the round is going for one player.
type MissionStatus int

const (
	MissionRunning MissionStatus = iota
	MissionSuccess
	MissionFailure
)

func (s MissionStatus) String() string {
	switch s {
	case MissionRunning:
		return "running"
	case MissionSuccess:
		return "success"
	case MissionFailure:
		return "failure"
	}
	return fmt.Sprintf("MissionStatus(%d)", int(s))
}

// Category is a capability tag. The command queue routes a command to every
// simulation object whose category mask intersects the command's.
type Category uint32

const (
	CategoryNone  Category = 0
	CategoryScene Category = 1 << iota
	CategoryPlayerCharacter
	CategoryProjectile
)
