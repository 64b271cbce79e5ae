package network

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/automoto/skirmish/shared/messages"
	"github.com/coder/websocket"
	"go.uber.org/zap"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnected
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	}
	return "unknown"
}

const (
	defaultSendBuffer = 64
	inboundBuffer     = 256
)

type Options struct {
	Logger     *zap.Logger
	SendBuffer int // outbound packets queued before Send starts dropping
}

// Client carries packets over one WebSocket connection. Send never blocks the
// game loop; inbound packets wait in a channel until Drain.
// All shared fields are protected by mu (reader and writer run on their own goroutines).
type Client struct {
	mu        sync.RWMutex
	state     ClientState
	lastError error
	conn      *websocket.Conn

	logger *zap.Logger
	out    chan []byte
	in     chan messages.Packet

	lost     chan struct{}
	lostOnce sync.Once
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// Dial connects to a relay, e.g. "ws://localhost:7373".
func Dial(ctx context.Context, rawURL string, opts Options) (*Client, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaultSendBuffer
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawURL, err)
	}
	q := u.Query()
	q.Set(messages.VersionQuery, strconv.Itoa(messages.ProtocolVersion))
	u.RawQuery = q.Encode()

	conn, _, err := websocket.Dial(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawURL, err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		state:  StateConnected,
		conn:   conn,
		logger: opts.Logger.With(zap.String("remote", rawURL)),
		out:    make(chan []byte, opts.SendBuffer),
		in:     make(chan messages.Packet, inboundBuffer),
		lost:   make(chan struct{}),
		cancel: cancel,
	}
	c.logger.Info("connected to relay")

	c.wg.Add(2)
	go c.readLoop(loopCtx)
	go c.writeLoop(loopCtx)
	return c, nil
}

// Send queues p for transmission. Failures are logged and reported through
// State and LastError, never to the caller.
func (c *Client) Send(p messages.Packet) {
	if c.State() != StateConnected {
		c.logger.Debug("send while not connected", zap.Stringer("type", p.Type()))
		return
	}

	data, err := messages.Encode(p)
	if err != nil {
		c.logger.Warn("encode failed", zap.Error(err))
		return
	}

	select {
	case c.out <- data:
	default:
		c.logger.Warn("send buffer full, dropping packet", zap.Stringer("type", p.Type()))
	}
}

// Drain returns all packets received since the last call, non-blocking.
func (c *Client) Drain() []messages.Packet {
	return drainChan(c.in)
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Lost is closed once the connection fails or is closed.
func (c *Client) Lost() <-chan struct{} {
	return c.lost
}

// Close sends a normal closure. Packets still queued are dropped.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	if c.state == StateConnected {
		c.state = StateDisconnected
	}
	c.conn = nil
	c.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close(websocket.StatusNormalClosure, "")
	}
	c.cancel()
	c.wg.Wait()
	c.markLost()
	return err
}

func (c *Client) readLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		conn := c.currentConn()
		if conn == nil {
			return
		}
		typ, data, err := conn.Read(ctx)
		if err != nil {
			c.fail(fmt.Errorf("read: %w", err))
			return
		}
		if typ != websocket.MessageBinary {
			c.logger.Warn("ignoring non-binary frame")
			continue
		}

		p, err := messages.Decode(data)
		if err != nil {
			c.logger.Warn("dropping malformed packet", zap.Error(err))
			continue
		}

		select {
		case c.in <- p:
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-c.out:
			conn := c.currentConn()
			if conn == nil {
				return
			}
			if err := conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				c.fail(fmt.Errorf("write: %w", err))
				return
			}
		}
	}
}

func (c *Client) currentConn() *websocket.Conn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

// fail records the first error of a still-open connection. Errors caused by
// our own Close are not reported.
func (c *Client) fail(err error) {
	c.mu.Lock()
	if c.state == StateConnected {
		c.state = StateError
		c.lastError = err
		c.logger.Error("connection lost", zap.Error(err))
	}
	c.mu.Unlock()

	c.cancel()
	c.markLost()
}

func (c *Client) markLost() {
	c.lostOnce.Do(func() { close(c.lost) })
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
