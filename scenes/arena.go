package scenes

import (
	"image/color"
	"time"

	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/player"
	"github.com/automoto/skirmish/session"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

const (
	layerWorld ecs.LayerID = iota
	layerHUD
)

// ArenaOptions wires an arena scene to an already populated session.
type ArenaOptions struct {
	Session  *session.Session
	Local    *player.Controller
	Keyboard *Keyboard
	Binding  *input.KeyBinding // shown in the HUD; may be nil
	Client   *network.Client   // nil when playing offline
	Restart  func() interface{}
	Logger   *zap.Logger
}

// ArenaScene runs the match: it feeds keyboard edges and network packets to
// the session once per frame and renders the world with ecs renderers.
type ArenaScene struct {
	ArenaOptions
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	dt           time.Duration
	connLost     bool
}

func NewArenaScene(sc SceneChanger, opts ArenaOptions) *ArenaScene {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	as := &ArenaScene{
		ArenaOptions: opts,
		ecs:          ecs.NewECS(opts.Session.World()),
		sceneChanger: sc,
		dt:           time.Second / time.Duration(cfg.C.TickRate),
	}

	as.ecs.AddRenderer(layerWorld, drawFloors)
	as.ecs.AddRenderer(layerWorld, drawProjectiles)
	as.ecs.AddRenderer(layerWorld, as.drawCharacters)
	as.ecs.AddRenderer(layerHUD, as.drawHUD)
	return as
}

func (as *ArenaScene) Update() {
	events := as.Keyboard.Events()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		as.sceneChanger.Quit()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if as.Session.Paused() {
			as.Session.Resume()
		} else {
			as.Session.Pause()
		}
	}

	as.Session.Tick(events, as.inbound(), as.dt)

	if status := as.Local.MissionStatus(); status != netconfig.MissionRunning {
		as.sceneChanger.ChangeScene(NewResultScene(as.sceneChanger, status, as.Restart))
	}
}

// inbound drains the client and notices a lost connection once.
func (as *ArenaScene) inbound() []messages.Packet {
	if as.Client == nil {
		return nil
	}
	packets := as.Client.Drain()

	if !as.connLost {
		select {
		case <-as.Client.Lost():
			as.connLost = true
			as.Logger.Warn("relay connection lost", zap.Error(as.Client.LastError()))
			as.Session.ReleaseRemote()
		default:
		}
	}
	return packets
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)
	as.ecs.Draw(screen)
}
