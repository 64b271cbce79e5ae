package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/automoto/skirmish/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	floorColor   = color.RGBA{90, 90, 100, 255}
	localColor   = color.RGBA{70, 140, 240, 255}
	remoteColor  = color.RGBA{230, 80, 70, 255}
	bulletColor  = color.RGBA{250, 220, 90, 255}
	missileColor = color.RGBA{250, 140, 40, 255}
	hudColor     = color.RGBA{220, 220, 220, 255}
)

const hudMargin = 10

func fillObject(screen *ebiten.Image, obj *components.ObjectData, clr color.Color) {
	vector.DrawFilledRect(screen, float32(obj.X), float32(obj.Y), float32(obj.W), float32(obj.H), clr, false)
}

func drawFloors(e *ecs.ECS, screen *ebiten.Image) {
	tags.Floor.Each(e.World, func(entry *donburi.Entry) {
		fillObject(screen, components.Object.Get(entry), floorColor)
	})
	tags.FloatingPlatform.Each(e.World, func(entry *donburi.Entry) {
		fillObject(screen, components.Object.Get(entry), floorColor)
	})
}

func drawProjectiles(e *ecs.ECS, screen *ebiten.Image) {
	tags.Projectile.Each(e.World, func(entry *donburi.Entry) {
		clr := bulletColor
		if components.Projectile.Get(entry).Missile {
			clr = missileColor
		}
		fillObject(screen, components.Object.Get(entry), clr)
	})
}

func (as *ArenaScene) drawCharacters(e *ecs.ECS, screen *ebiten.Image) {
	tags.Character.Each(e.World, func(entry *donburi.Entry) {
		clr := remoteColor
		if components.Character.Get(entry).ID == as.Local.ID() {
			clr = localColor
		}
		fillObject(screen, components.Object.Get(entry), clr)
	})
}

func (as *ArenaScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	face := fonts.HUD.Get()

	parts := []string{fmt.Sprintf("P%d", as.Local.ID())}
	if c, ok := as.Session.Character(as.Local.ID()); ok {
		parts = append(parts, fmt.Sprintf("missiles%s %d  shots %d  hits %d",
			as.keyHint(netconfig.ActionLaunchMissile), c.MissileAmmo, c.ShotsFired, c.HitsTaken))
	}
	parts = append(parts, as.netStatus())
	if as.Session.Paused() {
		parts = append(parts, "PAUSED")
	}

	text.Draw(screen, strings.Join(parts, "  |  "), face, hudMargin, hudMargin+12, hudColor)
}

// keyHint renders the key bound to action as " [M]", or nothing.
func (as *ArenaScene) keyHint(action netconfig.ActionID) string {
	if as.Binding == nil {
		return ""
	}
	key, ok := as.Binding.AssignedKey(action)
	if !ok {
		return ""
	}
	return " [" + KeyName(key) + "]"
}

func (as *ArenaScene) netStatus() string {
	if as.Client == nil {
		return "offline"
	}
	if as.Client.State() == network.StateConnected {
		return fmt.Sprintf("online (%d players)", len(as.Session.Controllers()))
	}
	return "connection lost"
}
