package systems

import (
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/automoto/skirmish/systems/factory"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
)

type shot struct {
	owner   netconfig.PlayerID
	x, y    float64
	dir     float64
	missile bool
}

// UpdateWeapons turns fire and missile requests left by commands into
// projectiles. Requests are cleared every tick whether or not they fired.
func UpdateWeapons(w donburi.World) {
	var shots []shot

	tags.Character.Each(w, func(e *donburi.Entry) {
		character := components.Character.Get(e)
		obj := components.Object.Get(e)

		if character.FireCooldown > 0 {
			character.FireCooldown--
		}

		muzzleX := obj.X + obj.W/2
		muzzleY := obj.Y + obj.H/3

		if character.FireRequested && character.FireCooldown == 0 {
			shots = append(shots, shot{owner: character.ID, x: muzzleX, y: muzzleY, dir: character.Facing})
			character.FireCooldown = cfg.Weapon.FireCooldown
			character.ShotsFired++
		}
		if character.MissileRequested && character.MissileAmmo > 0 {
			shots = append(shots, shot{owner: character.ID, x: muzzleX, y: muzzleY, dir: character.Facing, missile: true})
			character.MissileAmmo--
			character.MissilesLaunched++
		}

		character.FireRequested = false
		character.MissileRequested = false
	})

	// Spawn after iterating so the query is not mutated mid-walk.
	for _, s := range shots {
		factory.CreateProjectile(w, s.owner, s.x, s.y, s.dir, s.missile)
	}
}
