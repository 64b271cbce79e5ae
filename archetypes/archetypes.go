package archetypes

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
)

var (
	Character = newArchetype(
		tags.Character,
		components.Character,
		components.Category,
		components.Object,
		components.Physics,
	)
	Floor = newArchetype(
		tags.Floor,
		components.Object,
	)
	FloatingPlatform = newArchetype(
		tags.FloatingPlatform,
		components.Object,
		components.Tween,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Category,
		components.Object,
		components.Physics,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
