package systems

import (
	"math"

	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/gamemath"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// UpdatePhysics integrates command-driven acceleration, friction and gravity
// for every character, then resolves them against the arena floor.
func UpdatePhysics(w donburi.World) {
	tags.Character.Each(w, func(e *donburi.Entry) {
		character := components.Character.Get(e)
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		physics.SpeedX += physics.AccelX
		physics.SpeedY += physics.AccelY
		physics.AccelX, physics.AccelY = 0, 0

		if character.Grounded {
			physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, physics.Friction)
		}
		physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, character.MaxSpeed)

		physics.SpeedY += physics.Gravity
		physics.SpeedY = gamemath.Clamp(physics.SpeedY, cfg.Physics.MaxRiseSpeed, cfg.Physics.MaxFallSpeed)

		obj.X = gamemath.Clamp(obj.X+physics.SpeedX, 0, float64(cfg.Arena.Width)-obj.W)
		character.Grounded = resolveVertical(physics, obj.Object)
		obj.Update()
	})
}

// resolveVertical moves obj by its vertical speed and reports whether it
// ended up standing on something solid.
func resolveVertical(physics *components.PhysicsData, obj *resolv.Object) bool {
	dy := physics.SpeedY

	checkDist := dy
	if dy >= 0 {
		checkDist++
	}

	if check := obj.Check(0, checkDist, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			obj.Y += contact.Y()
			physics.SpeedY = 0
			return dy >= 0
		}
	}

	obj.Y += dy
	return false
}

// FellOut reports whether a character has dropped below the arena.
func FellOut(e *donburi.Entry) bool {
	obj := components.Object.Get(e)
	return obj.Y > cfg.Arena.FallLimit || math.IsNaN(obj.Y)
}
