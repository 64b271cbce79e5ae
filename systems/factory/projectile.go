package factory

import (
	"github.com/automoto/skirmish/archetypes"
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateProjectile spawns a bullet or missile travelling horizontally.
func CreateProjectile(w donburi.World, owner netconfig.PlayerID, x, y, dir float64, missile bool) *donburi.Entry {
	projectile := archetypes.Projectile.Spawn(w)

	width, height := cfg.Weapon.ProjectileWidth, cfg.Weapon.ProjectileHeight
	speed, lifetime := cfg.Weapon.BulletSpeed, cfg.Weapon.BulletLifetime
	if missile {
		width *= 2
		speed, lifetime = cfg.Weapon.MissileSpeed, cfg.Weapon.MissileLifetime
	}

	obj := resolv.NewObject(x, y, width, height, tags.ResolvProjectile)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = projectile
	components.Object.SetValue(projectile, components.ObjectData{Object: obj})

	components.Projectile.SetValue(projectile, components.ProjectileData{
		Owner:    owner,
		Missile:  missile,
		Lifetime: lifetime,
	})
	components.Category.SetValue(projectile, components.CategoryData{
		Mask: netconfig.CategoryProjectile,
	})
	components.Physics.SetValue(projectile, components.PhysicsData{
		SpeedX: dir * speed,
	})

	addToSpace(w, obj)
	return projectile
}
