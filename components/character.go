package components

import (
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CharacterData is the simulated body of one player. Commands mutate it;
// systems turn the request flags into projectiles and movement.
type CharacterData struct {
	ID       netconfig.PlayerID
	MaxSpeed float64
	Grounded bool

	FireRequested    bool
	MissileRequested bool
	FireCooldown     int // ticks until the next shot is allowed
	MissileAmmo      int
	Facing           float64 // -1 left, 1 right

	ShotsFired       int
	MissilesLaunched int
	HitsTaken        int
}

// Accelerate adds to the velocity that physics integrates this tick.
func (c *CharacterData) Accelerate(p *PhysicsData, vx, vy float64) {
	p.AccelX += vx
	p.AccelY += vy
	if vx < 0 {
		c.Facing = -1
	} else if vx > 0 {
		c.Facing = 1
	}
}

// Knockback pushes the character away from a hit coming from dir.
func (c *CharacterData) Knockback(p *PhysicsData, dir, force float64) {
	p.SpeedX += dir * force
	p.SpeedY -= force / 2
	c.Grounded = false
	c.HitsTaken++
}

func (c *CharacterData) Fire() {
	c.FireRequested = true
}

func (c *CharacterData) LaunchMissile() {
	c.MissileRequested = true
}

var Character = donburi.NewComponentType[CharacterData]()
