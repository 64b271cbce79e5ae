package systems

import (
	"time"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// UpdatePlatforms advances every floating platform along its tween and carries
// the characters standing on it.
func UpdatePlatforms(w donburi.World, dt time.Duration) {
	tags.FloatingPlatform.Each(w, func(e *donburi.Entry) {
		tw := components.Tween.Get(e)
		obj := components.Object.Get(e)

		y, _, done := tw.Update(float32(dt.Seconds()))
		if done {
			tw.Reset()
		}

		dy := float64(y) - obj.Y
		if dy == 0 {
			return
		}
		riders := ridersOf(w, obj.Object)

		obj.Y = float64(y)
		obj.Update()
		for _, rider := range riders {
			rider.Y += dy
			rider.Update()
		}
	})
}

// ridersOf returns the grounded characters whose feet rest on platform.
func ridersOf(w donburi.World, platform *resolv.Object) []*resolv.Object {
	var riders []*resolv.Object
	tags.Character.Each(w, func(e *donburi.Entry) {
		if !components.Character.Get(e).Grounded {
			return
		}
		obj := components.Object.Get(e)
		feet := obj.Y + obj.H
		onTop := feet >= platform.Y-1 && feet <= platform.Y+1
		overlaps := obj.X+obj.W > platform.X && obj.X < platform.X+platform.W
		if onTop && overlaps {
			riders = append(riders, obj.Object)
		}
	})
	return riders
}
