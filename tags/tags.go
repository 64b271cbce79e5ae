package tags

import "github.com/yohamta/donburi"

var (
	Character        = donburi.NewTag().SetName("Character")
	Floor            = donburi.NewTag().SetName("Floor")
	FloatingPlatform = donburi.NewTag().SetName("FloatingPlatform")
	Projectile       = donburi.NewTag().SetName("Projectile")
)

// Resolv tags for physics collision
const (
	ResolvSolid      = "solid"
	ResolvCharacter  = "character"
	ResolvProjectile = "projectile"
)
