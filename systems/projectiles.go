package systems

import (
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
)

// UpdateProjectiles moves projectiles, knocks back the first character other
// than the owner they touch, and removes spent, expired or off-screen ones.
func UpdateProjectiles(w donburi.World) {
	var expired []*donburi.Entry

	tags.Projectile.Each(w, func(e *donburi.Entry) {
		projectile := components.Projectile.Get(e)
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		if hit(w, projectile, physics, obj) {
			expired = append(expired, e)
			return
		}

		obj.X += physics.SpeedX
		obj.Update()
		projectile.Lifetime--

		if projectile.Lifetime <= 0 || obj.X+obj.W < 0 || obj.X > float64(cfg.Arena.Width) {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		RemoveObject(w, e)
	}
}

func hit(w donburi.World, projectile *components.ProjectileData, physics *components.PhysicsData, obj *components.ObjectData) bool {
	check := obj.Check(physics.SpeedX, 0, tags.ResolvCharacter)
	if check == nil {
		return false
	}

	for _, o := range check.ObjectsByTags(tags.ResolvCharacter) {
		target, ok := o.Data.(*donburi.Entry)
		if !ok || !w.Valid(target.Entity()) || !target.HasComponent(components.Character) {
			continue
		}
		character := components.Character.Get(target)
		if character.ID == projectile.Owner {
			continue
		}

		force := cfg.Weapon.BulletKnockback
		if projectile.Missile {
			force = cfg.Weapon.MissileKnockback
		}
		dir := 1.0
		if physics.SpeedX < 0 {
			dir = -1
		}
		character.Knockback(components.Physics.Get(target), dir, force)
		return true
	}
	return false
}

// RemoveObject deletes e from the world and its collision object from the space.
func RemoveObject(w donburi.World, e *donburi.Entry) {
	if e.HasComponent(components.Object) {
		obj := components.Object.Get(e)
		if obj.Space != nil {
			obj.Space.Remove(obj.Object)
		}
	}
	w.Remove(e.Entity())
}
