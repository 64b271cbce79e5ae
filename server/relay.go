// Package server hosts the packet relay. It holds no game state: every valid
// packet a peer sends is broadcast to all connected peers, the sender included.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netconfig"
	"github.com/automoto/skirmish/shared/protocol"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const (
	peerSendBuffer = 128
	maxFrameSize   = 1 << 10
)

type heldKey struct {
	player netconfig.PlayerID
	action netconfig.ActionID
}

type peer struct {
	id   uint64
	conn *websocket.Conn
	out  chan []byte

	// held tracks realtime actions this peer last reported active, so they
	// can be released for everyone else when the peer goes away.
	held map[heldKey]bool
}

type Relay struct {
	logger *zap.Logger

	mu     sync.Mutex
	peers  map[uint64]*peer
	nextID uint64
	closed bool
}

func NewRelay(logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		logger: logger,
		peers:  make(map[uint64]*peer),
	}
}

// Handler returns the relay mux: websocket peers on "/", a health probe on
// "/health".
func (r *Relay) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", r)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"status":"ok","protocol":%d}`, messages.ProtocolVersion)
	})
	return mux
}

func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if v := req.URL.Query().Get(messages.VersionQuery); v != strconv.Itoa(messages.ProtocolVersion) {
		r.logger.Warn("rejecting peer with wrong protocol version",
			zap.String("version", v), zap.String("addr", req.RemoteAddr))
		http.Error(w, "protocol version mismatch", http.StatusUpgradeRequired)
		return
	}

	conn, err := websocket.Accept(w, req, nil)
	if err != nil {
		r.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(maxFrameSize)

	p, ok := r.addPeer(conn)
	if !ok {
		_ = conn.Close(websocket.StatusGoingAway, "relay shutting down")
		return
	}
	log := r.logger.With(zap.Uint64("peer", p.id), zap.String("addr", req.RemoteAddr))
	log.Info("peer connected", zap.Int("peers", r.PeerCount()))

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.writeLoop(ctx, p, log)
	}()

	router := protocol.NewRouter()
	router.OnRealtimeChange(func(change messages.PlayerRealtimeChange) {
		r.track(p, change)
	})

	err = r.readLoop(ctx, p, router, log)
	cancel()
	<-done

	released := r.removePeer(p)
	for _, pkt := range released {
		r.broadcast(pkt, log)
	}

	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		log.Info("peer disconnected", zap.Int("released", len(released)))
	} else {
		log.Warn("peer dropped", zap.Error(err), zap.Int("released", len(released)))
	}
	_ = conn.CloseNow()
}

// PeerCount reports the number of connected peers.
func (r *Relay) PeerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.peers)
}

// Close disconnects every peer and refuses new ones.
func (r *Relay) Close() {
	r.mu.Lock()
	r.closed = true
	peers := make([]*peer, 0, len(r.peers))
	for _, p := range r.peers {
		peers = append(peers, p)
	}
	r.mu.Unlock()

	for _, p := range peers {
		_ = p.conn.Close(websocket.StatusGoingAway, "relay shutting down")
	}
}

func (r *Relay) readLoop(ctx context.Context, p *peer, router *protocol.Router, log *zap.Logger) error {
	for {
		typ, data, err := p.conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageBinary {
			log.Warn("ignoring non-binary frame")
			continue
		}

		pkt, err := messages.Decode(data)
		if err != nil {
			log.Warn("dropping invalid packet", zap.Error(err))
			continue
		}

		router.Dispatch(pkt)
		r.broadcastRaw(data, log)
	}
}

func (r *Relay) writeLoop(ctx context.Context, p *peer, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-p.out:
			if err := p.conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				if !errors.Is(err, context.Canceled) {
					log.Warn("write failed", zap.Error(err))
				}
				return
			}
		}
	}
}

func (r *Relay) addPeer(conn *websocket.Conn) (*peer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false
	}
	r.nextID++
	p := &peer{
		id:   r.nextID,
		conn: conn,
		out:  make(chan []byte, peerSendBuffer),
		held: make(map[heldKey]bool),
	}
	r.peers[p.id] = p
	return p, true
}

// removePeer unregisters p and returns disable packets for every realtime
// action it left held, in player then action order.
func (r *Relay) removePeer(p *peer) []messages.Packet {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.peers, p.id)

	keys := make([]heldKey, 0, len(p.held))
	for k, active := range p.held {
		if active {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].player != keys[j].player {
			return keys[i].player < keys[j].player
		}
		return keys[i].action < keys[j].action
	})

	out := make([]messages.Packet, 0, len(keys))
	for _, k := range keys {
		out = append(out, messages.PlayerRealtimeChange{PlayerID: k.player, Action: k.action, Active: false})
	}
	return out
}

func (r *Relay) track(p *peer, change messages.PlayerRealtimeChange) {
	if !netconfig.IsRealtimeAction(change.Action) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.held[heldKey{player: change.PlayerID, action: change.Action}] = change.Active
}

func (r *Relay) broadcast(pkt messages.Packet, log *zap.Logger) {
	data, err := messages.Encode(pkt)
	if err != nil {
		log.Error("encode failed", zap.Error(err))
		return
	}
	r.broadcastRaw(data, log)
}

// broadcastRaw queues data on every peer. A peer whose buffer is full misses
// the packet.
func (r *Relay) broadcastRaw(data []byte, log *zap.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.peers {
		select {
		case p.out <- data:
		default:
			log.Warn("peer send buffer full, dropping packet", zap.Uint64("target", p.id))
		}
	}
}
