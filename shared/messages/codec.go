package messages

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/automoto/skirmish/shared/netconfig"
)

var (
	ErrShortPacket   = errors.New("packet too short")
	ErrTrailingBytes = errors.New("trailing bytes after packet")
	ErrUnknownPacket = errors.New("unknown packet type")
	ErrUnknownAction = errors.New("unknown action")
)

// Field widths on the wire. Order: messageKind, playerIdentifier, actionKind,
// then isNowActive for realtime changes only.
const (
	headerSize         = 4 * 3
	playerEventSize    = headerSize
	realtimeChangeSize = headerSize + 1
)

// Encode serializes p as big-endian fixed-width fields.
func Encode(p Packet) ([]byte, error) {
	switch msg := p.(type) {
	case PlayerEvent:
		if !msg.Action.Valid() {
			return nil, fmt.Errorf("encode %s: %w: %d", msg.Type(), ErrUnknownAction, msg.Action)
		}
		buf := make([]byte, 0, playerEventSize)
		return appendHeader(buf, msg.Type(), msg.PlayerID, msg.Action), nil
	case PlayerRealtimeChange:
		if !msg.Action.Valid() {
			return nil, fmt.Errorf("encode %s: %w: %d", msg.Type(), ErrUnknownAction, msg.Action)
		}
		buf := make([]byte, 0, realtimeChangeSize)
		buf = appendHeader(buf, msg.Type(), msg.PlayerID, msg.Action)
		if msg.Active {
			return append(buf, 1), nil
		}
		return append(buf, 0), nil
	case nil:
		return nil, fmt.Errorf("encode: %w: nil", ErrUnknownPacket)
	default:
		return nil, fmt.Errorf("encode: %w: %T", ErrUnknownPacket, p)
	}
}

// Decode parses a single packet. The whole buffer must be consumed.
func Decode(data []byte) (Packet, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("decode: %w: %d bytes", ErrShortPacket, len(data))
	}

	kind := PacketType(int32(binary.BigEndian.Uint32(data[0:4])))
	id := netconfig.PlayerID(int32(binary.BigEndian.Uint32(data[4:8])))
	action := netconfig.ActionID(int32(binary.BigEndian.Uint32(data[8:12])))

	var want int
	switch kind {
	case PacketPlayerEvent:
		want = playerEventSize
	case PacketPlayerRealtimeChange:
		want = realtimeChangeSize
	default:
		return nil, fmt.Errorf("decode: %w: %d", ErrUnknownPacket, int32(kind))
	}

	if len(data) < want {
		return nil, fmt.Errorf("decode %s: %w: %d bytes", kind, ErrShortPacket, len(data))
	}
	if len(data) > want {
		return nil, fmt.Errorf("decode %s: %w: %d bytes", kind, ErrTrailingBytes, len(data)-want)
	}
	if !action.Valid() {
		return nil, fmt.Errorf("decode %s: %w: %d", kind, ErrUnknownAction, int32(action))
	}

	switch kind {
	case PacketPlayerEvent:
		return PlayerEvent{PlayerID: id, Action: action}, nil
	default:
		return PlayerRealtimeChange{PlayerID: id, Action: action, Active: data[headerSize] != 0}, nil
	}
}

func appendHeader(buf []byte, kind PacketType, id netconfig.PlayerID, action netconfig.ActionID) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(kind))
	buf = binary.BigEndian.AppendUint32(buf, uint32(id))
	return binary.BigEndian.AppendUint32(buf, uint32(action))
}
