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

func CreateCharacter(w donburi.World, id netconfig.PlayerID, x, y float64) *donburi.Entry {
	character := archetypes.Character.Spawn(w)

	obj := resolv.NewObject(x, y, cfg.Player.Width, cfg.Player.Height, tags.ResolvCharacter)
	obj.SetShape(resolv.NewRectangle(0, 0, cfg.Player.Width, cfg.Player.Height))
	obj.Data = character
	components.Object.SetValue(character, components.ObjectData{Object: obj})

	components.Character.SetValue(character, components.CharacterData{
		ID:          id,
		MaxSpeed:    cfg.Player.MaxSpeed,
		MissileAmmo: cfg.Player.MissileAmmo,
		Facing:      1,
	})
	components.Category.SetValue(character, components.CategoryData{
		Mask: netconfig.CategoryPlayerCharacter,
	})
	components.Physics.SetValue(character, components.PhysicsData{
		Gravity:  cfg.Player.Gravity,
		Friction: cfg.Player.Friction,
	})

	addToSpace(w, obj)
	return character
}

// FindCharacter returns the character entry owned by id.
func FindCharacter(w donburi.World, id netconfig.PlayerID) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tags.Character.Each(w, func(e *donburi.Entry) {
		if found == nil && components.Character.Get(e).ID == id {
			found = e
		}
	})
	return found, found != nil
}
