package player

import (
	"fmt"
	"time"

	"github.com/automoto/skirmish/commands"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/yohamta/donburi"
)

// Jump impulse applied once per grounded jump.
const jumpImpulse = -12.0

// targetCharacter returns the character data for entry when it belongs to id.
func targetCharacter(entry *donburi.Entry, id netconfig.PlayerID) (*components.CharacterData, *components.PhysicsData, bool) {
	if !entry.HasComponent(components.Character) || !entry.HasComponent(components.Physics) {
		return nil, nil, false
	}
	c := components.Character.Get(entry)
	if c.ID != id {
		return nil, nil, false
	}
	return c, components.Physics.Get(entry), true
}

// CharacterMover accelerates the target by a velocity scaled by its max speed.
type CharacterMover struct {
	VelX, VelY float64
	Target     netconfig.PlayerID
}

func (m CharacterMover) Apply(entry *donburi.Entry, _ time.Duration) {
	c, p, ok := targetCharacter(entry, m.Target)
	if !ok {
		return
	}
	c.Accelerate(p, m.VelX*c.MaxSpeed, m.VelY*c.MaxSpeed)
}

// JumpTrigger applies an impulse only while the target stands on the ground.
type JumpTrigger struct {
	VelX, VelY float64
	Target     netconfig.PlayerID
}

func (j JumpTrigger) Apply(entry *donburi.Entry, _ time.Duration) {
	c, p, ok := targetCharacter(entry, j.Target)
	if !ok || !c.Grounded {
		return
	}
	c.Accelerate(p, j.VelX, j.VelY)
	c.Grounded = false
}

type FireTrigger struct {
	Target netconfig.PlayerID
}

func (f FireTrigger) Apply(entry *donburi.Entry, _ time.Duration) {
	if c, _, ok := targetCharacter(entry, f.Target); ok {
		c.Fire()
	}
}

type MissileTrigger struct {
	Target netconfig.PlayerID
}

func (m MissileTrigger) Apply(entry *donburi.Entry, _ time.Duration) {
	if c, _, ok := targetCharacter(entry, m.Target); ok {
		c.LaunchMissile()
	}
}

// actionTable holds exactly one command per action. It is filled once and
// only read afterwards.
type actionTable [netconfig.ActionCount]commands.Command

func newActionTable(id netconfig.PlayerID) (actionTable, error) {
	var t actionTable
	t[netconfig.ActionMoveLeft].Action = CharacterMover{VelX: -1, Target: id}
	t[netconfig.ActionMoveRight].Action = CharacterMover{VelX: +1, Target: id}
	t[netconfig.ActionJump].Action = JumpTrigger{VelY: jumpImpulse, Target: id}
	t[netconfig.ActionFire].Action = FireTrigger{Target: id}
	t[netconfig.ActionLaunchMissile].Action = MissileTrigger{Target: id}

	for a := range t {
		if t[a].Action == nil {
			return t, fmt.Errorf("no command bound to action %s", netconfig.ActionID(a))
		}
		t[a].Category = netconfig.CategoryPlayerCharacter
	}
	return t, nil
}

func (t *actionTable) command(a netconfig.ActionID) (commands.Command, bool) {
	if !a.Valid() {
		return commands.Command{}, false
	}
	return t[a], true
}
