// Package player translates input into commands for one participant and keeps
// networked peers in sync.
package player

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/skirmish/commands"
	"github.com/automoto/skirmish/input"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"go.uber.org/zap"
)

// Mode is fixed when the controller is built.
type Mode int

const (
	// ModeLocal reads the keyboard and applies commands directly.
	ModeLocal Mode = iota
	// ModeLocalNetworked reads the keyboard and forwards actions to the peer.
	ModeLocalNetworked
	// ModeRemote receives every action through decoded packets.
	ModeRemote
)

func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeLocalNetworked:
		return "local-networked"
	case ModeRemote:
		return "remote"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

var ErrInvalidMode = errors.New("invalid player mode")

// Sender transmits a packet to the network peer. Delivery is fire-and-forget;
// failures are the transport's to report.
type Sender interface {
	Send(p messages.Packet)
}

// Controller classifies input for one player and routes it either into the
// command queue or onto the network.
type Controller struct {
	id      netconfig.PlayerID
	mode    Mode
	binding *input.KeyBinding
	sender  Sender
	actions actionTable
	status  netconfig.MissionStatus
	logger  *zap.Logger

	// proxies records realtime state reported over the network: received from
	// the peer for remote players, sent to the peer for networked locals.
	proxies map[netconfig.ActionID]bool
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a controller. The mode must agree with which collaborators are
// present: local needs a binding and no sender, local-networked needs both,
// remote needs a sender and no binding.
func New(mode Mode, id netconfig.PlayerID, binding *input.KeyBinding, sender Sender, opts ...Option) (*Controller, error) {
	if err := validateMode(mode, binding, sender); err != nil {
		return nil, err
	}

	actions, err := newActionTable(id)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", id, err)
	}

	c := &Controller{
		id:      id,
		mode:    mode,
		binding: binding,
		sender:  sender,
		actions: actions,
		status:  netconfig.MissionRunning,
		logger:  zap.NewNop(),
		proxies: make(map[netconfig.ActionID]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.Int32("player", int32(id)), zap.Stringer("mode", mode))
	return c, nil
}

func NewLocal(id netconfig.PlayerID, binding *input.KeyBinding, opts ...Option) (*Controller, error) {
	return New(ModeLocal, id, binding, nil, opts...)
}

func NewLocalNetworked(id netconfig.PlayerID, binding *input.KeyBinding, sender Sender, opts ...Option) (*Controller, error) {
	return New(ModeLocalNetworked, id, binding, sender, opts...)
}

func NewRemote(id netconfig.PlayerID, sender Sender, opts ...Option) (*Controller, error) {
	return New(ModeRemote, id, nil, sender, opts...)
}

func validateMode(mode Mode, binding *input.KeyBinding, sender Sender) error {
	hasBinding := binding != nil
	hasSender := sender != nil

	var ok bool
	switch mode {
	case ModeLocal:
		ok = hasBinding && !hasSender
	case ModeLocalNetworked:
		ok = hasBinding && hasSender
	case ModeRemote:
		ok = !hasBinding && hasSender
	default:
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if !ok {
		return fmt.Errorf("%w: %s with binding=%t sender=%t", ErrInvalidMode, mode, hasBinding, hasSender)
	}
	return nil
}

func (c *Controller) ID() netconfig.PlayerID { return c.id }

func (c *Controller) Mode() Mode { return c.mode }

// IsLocal reports whether this controller reads a keyboard.
func (c *Controller) IsLocal() bool {
	return c.mode != ModeRemote
}

func (c *Controller) networked() bool {
	return c.mode != ModeLocal
}

// HandleEvent reacts to a key edge. Discrete actions fire on press, either
// locally or as a PlayerEvent; realtime actions are reported to the peer on
// both edges when networked.
func (c *Controller) HandleEvent(ev input.KeyEvent, q *commands.Queue) {
	if c.binding == nil {
		return
	}
	action, ok := c.binding.CheckAction(ev.Key)
	if !ok {
		return
	}

	if !netconfig.IsRealtimeAction(action) {
		if !ev.Pressed {
			return
		}
		if c.networked() {
			c.send(messages.PlayerEvent{PlayerID: c.id, Action: action})
			return
		}
		c.push(action, q)
		return
	}

	if c.networked() {
		c.proxies[action] = ev.Pressed
		c.send(messages.PlayerRealtimeChange{PlayerID: c.id, Action: action, Active: ev.Pressed})
	}
}

// HandleRealtimeInput pushes one command per held realtime key. Runs every
// tick for controllers that own a keyboard.
func (c *Controller) HandleRealtimeInput(q *commands.Queue) {
	if !c.IsLocal() || c.binding == nil {
		return
	}
	for _, action := range c.binding.RealtimeActions() {
		c.push(action, q)
	}
}

// HandleRealtimeNetworkInput pushes one command per realtime action the peer
// last reported as held. Runs every tick for remote controllers.
func (c *Controller) HandleRealtimeNetworkInput(q *commands.Queue) {
	if c.mode != ModeRemote {
		return
	}
	for _, action := range c.sortedProxies() {
		if c.proxies[action] && netconfig.IsRealtimeAction(action) {
			c.push(action, q)
		}
	}
}

// HandleNetworkEvent applies a discrete action received from the network.
func (c *Controller) HandleNetworkEvent(action netconfig.ActionID, q *commands.Queue) {
	c.push(action, q)
}

// HandleNetworkRealtimeChange records the peer's held state. The command is
// pushed by the next HandleRealtimeNetworkInput, not here.
func (c *Controller) HandleNetworkRealtimeChange(action netconfig.ActionID, active bool) {
	if !action.Valid() {
		return
	}
	c.proxies[action] = active
}

// DisableAllRealtimeActions tells the peer to release every action known to
// the proxy table and clears the table. Used on pause and disconnect so a held
// key cannot stay stuck on the other side.
func (c *Controller) DisableAllRealtimeActions() {
	for _, action := range c.sortedProxies() {
		if c.networked() {
			c.send(messages.PlayerRealtimeChange{PlayerID: c.id, Action: action, Active: false})
		}
		c.proxies[action] = false
	}
}

// ReportHeldRealtimeActions tells the peer about every realtime key held
// right now. Used after a pause, when the peer was told everything was released.
func (c *Controller) ReportHeldRealtimeActions() {
	if c.mode != ModeLocalNetworked {
		return
	}
	for _, action := range c.binding.RealtimeActions() {
		c.proxies[action] = true
		c.send(messages.PlayerRealtimeChange{PlayerID: c.id, Action: action, Active: true})
	}
}

// ClearProxies marks every recorded action released without notifying anyone.
func (c *Controller) ClearProxies() {
	for action := range c.proxies {
		c.proxies[action] = false
	}
}

// ProxyActive reports the network-held state recorded for action.
func (c *Controller) ProxyActive(action netconfig.ActionID) bool {
	return c.proxies[action]
}

func (c *Controller) SetMissionStatus(s netconfig.MissionStatus) {
	if s != c.status {
		c.logger.Info("mission status changed", zap.Stringer("from", c.status), zap.Stringer("to", s))
	}
	c.status = s
}

func (c *Controller) MissionStatus() netconfig.MissionStatus {
	return c.status
}

func (c *Controller) push(action netconfig.ActionID, q *commands.Queue) {
	cmd, ok := c.actions.command(action)
	if !ok || q == nil {
		return
	}
	q.Push(cmd)
}

func (c *Controller) send(p messages.Packet) {
	if c.sender == nil {
		return
	}
	c.logger.Debug("send", zap.Stringer("type", p.Type()))
	c.sender.Send(p)
}

func (c *Controller) sortedProxies() []netconfig.ActionID {
	out := make([]netconfig.ActionID, 0, len(c.proxies))
	for a := range c.proxies {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
