package components

import (
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/yohamta/donburi"
)

type ProjectileData struct {
	Owner    netconfig.PlayerID
	Missile  bool
	Lifetime int // ticks left before the projectile is removed
}

var Projectile = donburi.NewComponentType[ProjectileData]()
