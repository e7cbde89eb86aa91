package vangerssrv

import (
	"bytes"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

const (
	handshakeGreeting = "Vivat Sicher, Rock'n'Roll forever!!!"
	handshakeWelcome  = "Enter, my son, please..."
	handshakeReject   = "Auth failed, bye-bye\x00"
	handshakeMaxBytes = 256
	handshakeTimeout  = 5 * time.Second

	defaultSendQueueSize = 1000 // §5: outbound channel capacity >= 1000
	defaultWriteTimeout  = 5 * time.Second
	defaultReadBufSize   = 4096
)

// Client is one accepted TCP connection: its handshake, read loop (decoding
// frames and forwarding them to the server's core event channel) and write
// loop (draining an async send queue) run as independent goroutines, per
// §4.5/§5's "three logical tasks per connection" model.
type Client struct {
	id     player.ClientID
	conn   net.Conn
	remote string

	state    atomic.Int32
	protocol atomic.Int32

	// limiter bounds inbound packet rate per connection. It is a resource
	// guard, not a correctness mechanism: packets over the limit are
	// dropped silently rather than used to reject the connection.
	limiter *rate.Limiter

	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(conn net.Conn) *Client {
	host := conn.RemoteAddr().String()
	c := &Client{
		conn:    conn,
		remote:  host,
		limiter: rate.NewLimiter(rate.Limit(200), 400),
		sendCh:  make(chan []byte, defaultSendQueueSize),
		closeCh: make(chan struct{}),
	}
	c.state.Store(int32(StateConnected))
	return c
}

// ID returns the client's session-wide identity, valid only after a
// successful handshake.
func (c *Client) ID() player.ClientID { return c.id }

// State returns the connection's current lifecycle state.
func (c *Client) State() ConnState { return ConnState(c.state.Load()) }

// Protocol returns the negotiated protocol version (1 or 2), or 0 before
// the handshake completes.
func (c *Client) Protocol() uint8 { return uint8(c.protocol.Load()) }

// handshake performs the single fixed-literal exchange required before any
// other packet is accepted (§4.5). On success it sets the connection's
// state to AUTHENTICATED and records the negotiated protocol version.
func (c *Client) handshake() error {
	if err := c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeIO, err)
	}
	defer c.conn.SetReadDeadline(time.Time{})

	buf := make([]byte, 0, handshakeMaxBytes)
	tmp := make([]byte, handshakeMaxBytes)
	nulAt := -1

	for len(buf) < handshakeMaxBytes {
		n, err := c.conn.Read(tmp[:handshakeMaxBytes-len(buf)])
		if n > 0 {
			buf = append(buf, tmp[:n]...)
			if idx := bytes.IndexByte(buf, 0); idx >= 0 {
				nulAt = idx
				break
			}
		}
		if err != nil {
			c.writeReject()
			return fmt.Errorf("%w: %v", ErrHandshakeClosed, err)
		}
	}

	if nulAt < 0 || nulAt+1 >= len(buf) {
		c.writeReject()
		return ErrHandshakeBadHeader
	}
	if string(buf[:nulAt]) != handshakeGreeting {
		c.writeReject()
		return ErrHandshakeBadHeader
	}

	proto := buf[nulAt+1]
	if proto != 1 && proto != 2 {
		c.writeReject()
		return ErrHandshakeBadVersion
	}

	reply := append([]byte(handshakeWelcome), 0x00, proto)
	if _, err := c.conn.Write(reply); err != nil {
		return fmt.Errorf("%w: %v", ErrHandshakeIO, err)
	}

	c.protocol.Store(int32(proto))
	c.state.Store(int32(StateAuthenticated))
	return nil
}

func (c *Client) writeReject() {
	_, _ = c.conn.Write([]byte(handshakeReject))
}

// readLoop decodes frames off the socket and forwards each to events until
// a read fails (server shutdown closes the connection to force this) or a
// fatal frame error occurs.
// It always sends exactly one kindDisconnected event on exit (§5: "the
// reader sends DISCONNECTED exactly once").
func (c *Client) readLoop(events chan<- event, done <-chan struct{}, pool *bytePool) {
	var dec protocol.Decoder
	raw := pool.Get()
	defer pool.Put(raw)

	for {
		n, err := c.conn.Read(raw)
		if n > 0 {
			dec.Feed(raw[:n])
			if !c.drainFrames(&dec, events, done) {
				break
			}
		}
		if err != nil {
			break
		}
	}

	select {
	case events <- event{kind: kindDisconnected, clientID: c.id}:
	case <-done:
	}
}

// drainFrames pops every complete frame currently buffered. It returns
// false when a negative-length frame was hit, meaning the buffer was
// discarded and the connection must close (§4.1).
func (c *Client) drainFrames(dec *protocol.Decoder, events chan<- event, done <-chan struct{}) bool {
	for {
		pkt, ok, err := dec.Next()
		if err != nil {
			if err == protocol.ErrNegativeFrameLength {
				slog.Warn("fatal frame error, dropping connection", "client_id", c.id, "error", err)
				return false
			}
			slog.Debug("malformed frame skipped", "client_id", c.id, "error", err)
			continue
		}
		if !ok {
			return true
		}
		if c.limiter != nil && !c.limiter.Allow() {
			continue
		}
		select {
		case events <- event{kind: kindPacket, clientID: c.id, packet: pkt}:
		case <-done:
			return false
		}
	}
}

// writePump drains sendCh and writes each already-framed packet to the
// socket, batching queued writes via net.Buffers the way the teacher's
// GameClient.writePump does.
func (c *Client) writePump() {
	bufs := make(net.Buffers, 0, 32)

	for {
		select {
		case pkt, ok := <-c.sendCh:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(defaultWriteTimeout)); err != nil {
				slog.Warn("set write deadline failed", "client_id", c.id, "error", err)
				return
			}

			queued := len(c.sendCh)
			if queued == 0 {
				if _, err := c.conn.Write(pkt); err != nil {
					slog.Warn("write failed", "client_id", c.id, "error", err)
					return
				}
				continue
			}

			bufs = append(bufs[:0], pkt)
			for range queued {
				bufs = append(bufs, <-c.sendCh)
			}
			if _, err := bufs.WriteTo(c.conn); err != nil {
				slog.Warn("batch write failed", "client_id", c.id, "error", err)
				return
			}

		case <-c.closeCh:
			return
		}
	}
}

// Send queues an already-encoded frame for async delivery. A full queue
// means a stalled client; per §5's backpressure policy it is treated as
// disconnected rather than blocking the server core.
func (c *Client) Send(frame []byte) {
	select {
	case c.sendCh <- frame:
	default:
		slog.Warn("send queue full, disconnecting slow client", "client_id", c.id)
		c.CloseAsync()
	}
}

// CloseAsync signals the write pump to stop without blocking the caller.
// Safe to call more than once.
func (c *Client) CloseAsync() {
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateDisconnected))
		close(c.closeCh)
	})
}

// Close stops the write pump and closes the underlying connection.
func (c *Client) Close() error {
	c.CloseAsync()
	return c.conn.Close()
}
