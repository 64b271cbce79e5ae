package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"time"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/logging"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/player"
	"github.com/automoto/skirmish/scenes"
	"github.com/automoto/skirmish/session"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const dialTimeout = 5 * time.Second

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
	quit   bool
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

// match holds what survives between rounds.
type match struct {
	logger   *zap.Logger
	keyboard *scenes.Keyboard
	binding  *input.KeyBinding
	client   *network.Client
}

// newRound builds a fresh session with the configured players and the scene
// that runs it.
func (m *match) newRound(g *Game) (Scene, error) {
	s := session.New(m.logger)
	id := netconfig.PlayerID(config.C.Net.PlayerID)

	var sender player.Sender
	if m.client != nil {
		sender = m.client
	}
	local, err := s.AddLocal(id, m.binding, sender)
	if err != nil {
		return nil, err
	}

	if m.client != nil {
		for _, remote := range config.C.Net.RemotePlayers {
			if _, err := s.AddRemote(netconfig.PlayerID(remote), m.client); err != nil {
				return nil, err
			}
		}
	} else if len(config.C.Net.RemotePlayers) > 0 {
		m.logger.Warn("ignoring net.remotePlayers in local mode")
	}

	return scenes.NewArenaScene(g, scenes.ArenaOptions{
		Session:  s,
		Local:    local,
		Keyboard: m.keyboard,
		Binding:  m.binding,
		Client:   m.client,
		Restart:  m.restart(g),
		Logger:   m.logger,
	}), nil
}

func (m *match) restart(g *Game) func() interface{} {
	return func() interface{} {
		scene, err := m.newRound(g)
		if err != nil {
			m.logger.Fatal("restart round", zap.Error(err))
		}
		return scene
	}
}

func loadBindings(logger *zap.Logger, keyboard input.KeyState) (*input.KeyBinding, *input.Store) {
	store, err := input.OpenStore(config.C.AppName)
	if err != nil {
		logger.Warn("could not open binding store", zap.Error(err))
	} else if saved, err := store.Load(); err != nil {
		logger.Warn("could not load saved bindings", zap.Error(err))
	} else if saved != nil {
		return input.NewKeyBinding(keyboard, saved), store
	}

	defaults, err := scenes.ParseControls(config.C.Controls)
	if err != nil {
		logger.Fatal("invalid controls", zap.Error(err))
	}
	return input.NewKeyBinding(keyboard, defaults), store
}

func main() {
	configPath := flag.String("config", "", "Config file (default: ./skirmish.yaml if present)")
	flag.Parse()

	if _, err := config.Load(*configPath); err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	logger, err := logging.New(logging.Config{Level: config.C.Log.Level, File: config.C.Log.File})
	if err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	if err := fonts.LoadDefaults(); err != nil {
		logger.Fatal("load fonts", zap.Error(err))
	}

	m := &match{logger: logger, keyboard: &scenes.Keyboard{}}
	binding, store := loadBindings(logger, m.keyboard)
	m.binding = binding

	if config.C.Net.Mode == config.NetModeJoin {
		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		client, err := network.Dial(ctx, "ws://"+config.C.Net.Address, network.Options{
			Logger:     logger,
			SendBuffer: config.C.Net.SendBuffer,
		})
		cancel()
		if err != nil {
			logger.Fatal("join relay", zap.Error(err))
		}
		defer func() { _ = client.Close() }()
		m.client = client
	}

	g := &Game{}
	scene, err := m.newRound(g)
	if err != nil {
		logger.Fatal("start round", zap.Error(err))
	}
	g.scene = scene

	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("skirmish")
	ebiten.SetTPS(config.C.TickRate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game exited", zap.Error(err))
	}

	if store != nil {
		if err := store.Save(binding); err != nil {
			logger.Warn("could not save bindings", zap.Error(err))
		}
	}
}
