package scenes

import (
	"image/color"

	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
)

// ResultScene shows how the round ended for the local player.
type ResultScene struct {
	sceneChanger SceneChanger
	status       netconfig.MissionStatus
	restart      func() interface{}
}

func NewResultScene(sc SceneChanger, status netconfig.MissionStatus, restart func() interface{}) *ResultScene {
	return &ResultScene{sceneChanger: sc, status: status, restart: restart}
}

func (rs *ResultScene) Update() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		rs.sceneChanger.Quit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) && rs.restart != nil:
		rs.sceneChanger.ChangeScene(rs.restart())
	}
}

func (rs *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	title, clr := "DEFEATED", color.RGBA{230, 80, 70, 255}
	if rs.status == netconfig.MissionSuccess {
		title, clr = "VICTORY", color.RGBA{120, 220, 120, 255}
	}
	drawCentered(screen, title, fonts.Title, screen.Bounds().Dy()/2-20, clr)

	hint := "Esc: quit"
	if rs.restart != nil {
		hint = "Enter: play again   Esc: quit"
	}
	drawCentered(screen, hint, fonts.HUD, screen.Bounds().Dy()/2+20, hudColor)
}

func drawCentered(screen *ebiten.Image, s string, name fonts.FontName, y int, clr color.Color) {
	face := name.Get()
	bounds := text.BoundString(face, s)
	x := (screen.Bounds().Dx() - bounds.Dx()) / 2
	text.Draw(screen, s, face, x, y, clr)
}
