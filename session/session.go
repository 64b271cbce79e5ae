// Package session runs one match: it owns the simulation world, the shared
// command queue and every player controller, and advances them one tick at a
// time in a fixed order. It has no graphics dependency.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/automoto/skirmish/commands"
	"github.com/automoto/skirmish/components"
	cfg "github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/player"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/automoto/skirmish/shared/protocol"
	"github.com/automoto/skirmish/systems"
	"github.com/automoto/skirmish/systems/factory"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var ErrDuplicatePlayer = errors.New("player already in session")

const spaceCell = 16

type Session struct {
	world  donburi.World
	queue  *commands.Queue
	router *protocol.Router
	logger *zap.Logger

	controllers []*player.Controller
	byID        map[netconfig.PlayerID]*player.Controller
	paused      bool
	ticks       int
}

// New builds the arena from the active configuration.
func New(logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		world:  donburi.NewWorld(),
		queue:  commands.NewQueue(),
		router: protocol.NewRouter(),
		logger: logger,
		byID:   make(map[netconfig.PlayerID]*player.Controller),
	}

	// The space reaches below the fall limit so falling bodies stay inside it.
	spaceHeight := max(cfg.Arena.Height, int(cfg.Arena.FallLimit+cfg.Player.Height*4))
	factory.CreateSpace(s.world, cfg.Arena.Width, spaceHeight, spaceCell, spaceCell)

	// Leave a gap at both edges to fall through.
	margin := float64(cfg.Arena.Width) / 8
	factory.CreateFloor(s.world, margin, cfg.Arena.FloorY, float64(cfg.Arena.Width)-2*margin, spaceCell)

	factory.CreateFloatingPlatform(s.world,
		float64(cfg.Arena.Width)/2-cfg.Arena.PlatformWidth/2, cfg.Arena.PlatformY,
		cfg.Arena.PlatformWidth, spaceCell/2, cfg.Arena.PlatformRise, cfg.Arena.PlatformPeriod)

	s.router.OnPlayerEvent(func(ev messages.PlayerEvent) {
		c, ok := s.byID[ev.PlayerID]
		if !ok {
			s.logger.Debug("event for unknown player", zap.Int32("player", int32(ev.PlayerID)))
			return
		}
		c.HandleNetworkEvent(ev.Action, s.queue)
	})
	s.router.OnRealtimeChange(func(ch messages.PlayerRealtimeChange) {
		c, ok := s.byID[ch.PlayerID]
		if !ok {
			s.logger.Debug("realtime change for unknown player", zap.Int32("player", int32(ch.PlayerID)))
			return
		}
		c.HandleNetworkRealtimeChange(ch.Action, ch.Active)
	})

	return s
}

// AddLocal adds a keyboard player. With a nil sender the player acts on the
// local queue only; otherwise its discrete actions travel through the network.
func (s *Session) AddLocal(id netconfig.PlayerID, binding *input.KeyBinding, sender player.Sender) (*player.Controller, error) {
	mode := player.ModeLocal
	if sender != nil {
		mode = player.ModeLocalNetworked
	}
	return s.add(mode, id, binding, sender)
}

// AddRemote adds a player driven by packets from a peer.
func (s *Session) AddRemote(id netconfig.PlayerID, sender player.Sender) (*player.Controller, error) {
	return s.add(player.ModeRemote, id, nil, sender)
}

func (s *Session) add(mode player.Mode, id netconfig.PlayerID, binding *input.KeyBinding, sender player.Sender) (*player.Controller, error) {
	if _, ok := s.byID[id]; ok {
		return nil, fmt.Errorf("add player %d: %w", id, ErrDuplicatePlayer)
	}

	log := s.logger.With(zap.Int32("player", int32(id)), zap.Stringer("mode", mode))
	c, err := player.New(mode, id, binding, sender, player.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("add player %d: %w", id, err)
	}

	x, y := spawnPoint(len(s.controllers))
	factory.CreateCharacter(s.world, id, x, y)

	s.controllers = append(s.controllers, c)
	s.byID[id] = c
	log.Info("player joined")
	return c, nil
}

// spawnPoint alternates players left and right of the arena centre.
func spawnPoint(i int) (float64, float64) {
	offset := float64((i+1)/2) * cfg.Arena.SpawnSpread
	if i%2 == 1 {
		offset = -offset
	}
	x := float64(cfg.Arena.Width)/2 - cfg.Player.Width/2 + offset
	return x, cfg.Arena.FloorY - cfg.Player.Height
}

// Tick advances the match by one step. events are this tick's key edges,
// inbound the packets drained from the network since the last tick.
func (s *Session) Tick(events []input.KeyEvent, inbound []messages.Packet, dt time.Duration) {
	s.router.DispatchAll(inbound)

	if !s.paused {
		for _, ev := range events {
			for _, c := range s.controllers {
				c.HandleEvent(ev, s.queue)
			}
		}
		for _, c := range s.controllers {
			c.HandleRealtimeInput(s.queue)
		}
	}
	for _, c := range s.controllers {
		c.HandleRealtimeNetworkInput(s.queue)
	}

	s.queue.Distribute(s.world, dt)

	systems.UpdateWeapons(s.world)
	systems.UpdatePlatforms(s.world, dt)
	systems.UpdatePhysics(s.world)
	systems.UpdateProjectiles(s.world)
	s.updateMission()
	s.ticks++
}

// updateMission fails players whose character fell out of the arena. When
// several players started and only one is left standing, that one wins.
func (s *Session) updateMission() {
	running := 0
	var last *player.Controller
	for _, c := range s.controllers {
		if c.MissionStatus() != netconfig.MissionRunning {
			continue
		}
		e, ok := factory.FindCharacter(s.world, c.ID())
		if ok && systems.FellOut(e) {
			c.SetMissionStatus(netconfig.MissionFailure)
			systems.RemoveObject(s.world, e)
			continue
		}
		running++
		last = c
	}

	if len(s.controllers) > 1 && running == 1 {
		last.SetMissionStatus(netconfig.MissionSuccess)
	}
}

// Pause suspends local keyboard input and releases every realtime action the
// peers were told about. The world keeps running for remote players.
func (s *Session) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	for _, c := range s.controllers {
		if c.Mode() == player.ModeLocalNetworked {
			c.DisableAllRealtimeActions()
		}
	}
	s.logger.Info("session paused")
}

// Resume restores local input and reports keys still held to the peers.
func (s *Session) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	for _, c := range s.controllers {
		c.ReportHeldRealtimeActions()
	}
	s.logger.Info("session resumed")
}

// ReleaseRemote clears the held actions of every remote player, for use when
// the connection to the relay is lost.
func (s *Session) ReleaseRemote() {
	for _, c := range s.controllers {
		if c.Mode() == player.ModeRemote {
			c.ClearProxies()
		}
	}
}

func (s *Session) Paused() bool { return s.paused }

func (s *Session) Ticks() int { return s.ticks }

func (s *Session) World() donburi.World { return s.world }

func (s *Session) Queue() *commands.Queue { return s.queue }

func (s *Session) Controller(id netconfig.PlayerID) (*player.Controller, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Controllers returns the players in join order.
func (s *Session) Controllers() []*player.Controller {
	return append([]*player.Controller(nil), s.controllers...)
}

// Character returns the live character state of id, if it is still in play.
func (s *Session) Character(id netconfig.PlayerID) (*components.CharacterData, bool) {
	e, ok := factory.FindCharacter(s.world, id)
	if !ok {
		return nil, false
	}
	return components.Character.Get(e), true
}
