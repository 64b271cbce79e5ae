package factory

import (
	"github.com/automoto/skirmish/archetypes"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func CreateFloor(w donburi.World, x, y, width, height float64) *donburi.Entry {
	floor := archetypes.Floor.Spawn(w)

	obj := resolv.NewObject(x, y, width, height, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = floor

	components.Object.SetValue(floor, components.ObjectData{Object: obj})
	addToSpace(w, obj)

	return floor
}

// CreateFloatingPlatform spawns a solid platform that rises by rise pixels and
// comes back down, each leg taking period seconds.
func CreateFloatingPlatform(w donburi.World, x, y, width, height, rise, period float64) *donburi.Entry {
	platform := archetypes.FloatingPlatform.Spawn(w)

	obj := resolv.NewObject(x, y, width, height, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	obj.Data = platform
	components.Object.SetValue(platform, components.ObjectData{Object: obj})

	// The floating platform moves using a *gween.Sequence sequence of tweens, moving it back and forth.
	tw := gween.NewSequence()
	tw.Add(
		gween.New(float32(y), float32(y-rise), float32(period), ease.InOutQuad),
		gween.New(float32(y-rise), float32(y), float32(period), ease.InOutQuad),
	)
	components.Tween.Set(platform, tw)

	addToSpace(w, obj)
	return platform
}
