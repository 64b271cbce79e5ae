package messages

import "github.com/automoto/skirmish/shared/netconfig"

// ProtocolVersion is bumped whenever a packet layout changes. Client and relay
// both compile against this one schema.
const ProtocolVersion = 1

// VersionQuery is the URL query parameter a client announces ProtocolVersion
// in when it connects to the relay.
const VersionQuery = "v"

// PacketType is the leading messageKind field of every packet.
type PacketType int32

const (
	PacketPlayerEvent PacketType = iota
	PacketPlayerRealtimeChange
)

func (t PacketType) String() string {
	switch t {
	case PacketPlayerEvent:
		return "PlayerEvent"
	case PacketPlayerRealtimeChange:
		return "PlayerRealtimeChange"
	}
	return "Unknown"
}

// Packet is implemented by every message that crosses the network.
type Packet interface {
	Type() PacketType
}

// PlayerEvent is sent when a local player triggers a discrete action.
type PlayerEvent struct {
	PlayerID netconfig.PlayerID
	Action   netconfig.ActionID
}

func (PlayerEvent) Type() PacketType { return PacketPlayerEvent }

// PlayerRealtimeChange is sent when a realtime action starts or stops being held.
type PlayerRealtimeChange struct {
	PlayerID netconfig.PlayerID
	Action   netconfig.ActionID
	Active   bool
}

func (PlayerRealtimeChange) Type() PacketType { return PacketPlayerRealtimeChange }
