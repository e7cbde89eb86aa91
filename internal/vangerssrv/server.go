package vangerssrv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/udisondev/vangers-srv/internal/config"
	"github.com/udisondev/vangers-srv/internal/game"
	"github.com/udisondev/vangers-srv/internal/metrics"
	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

// eventKind tags what a Server.events entry carries.
type eventKind int

const (
	kindConnected eventKind = iota
	kindPacket
	kindDisconnected
)

// event is the single stream every client goroutine feeds and the core
// loop exclusively drains, keeping all Game/Player/Vanject mutation on one
// goroutine (§5: "cooperative single-threaded").
type event struct {
	kind     eventKind
	clientID player.ClientID
	client   *Client
	protocol uint8
	packet   protocol.Packet
}

// Server owns every Game and connected Client in the process. Only the
// goroutine running Run's core loop ever touches games or player state;
// client goroutines only read/write sockets and push events.
type Server struct {
	cfg     config.Server
	quirks  game.Quirks
	metrics *metrics.Metrics
	started *game.Uptime

	games *game.Registry

	mu      sync.RWMutex
	clients map[player.ClientID]*Client

	protoVersions map[player.ClientID]uint8

	events   chan event
	readPool *bytePool
}

// New builds a Server ready for Run.
func New(cfg config.Server, m *metrics.Metrics) *Server {
	return &Server{
		cfg:           cfg,
		quirks:        game.Quirks{VanWarMaxTimeBugCompat: cfg.VanWarMaxTimeBugCompat},
		metrics:       m,
		started:       game.NewUptime(),
		games:         game.NewRegistry(),
		clients:       make(map[player.ClientID]*Client),
		protoVersions: make(map[player.ClientID]uint8),
		events:        make(chan event, 256),
		readPool:      newBytePool(defaultReadBufSize),
	}
}

// Run accepts connections on ln and runs the core event loop until ctx is
// canceled. It returns once both the accept loop and the core loop have
// drained.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.acceptLoop(ctx, ln)
	}()

	s.coreLoop(ctx)
	wg.Wait()
	return nil
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Error("accept failed", "error", err)
			continue
		}

		if s.cfg.MaxConnections > 0 && s.clientCount() >= s.cfg.MaxConnections {
			slog.Warn("max connections reached, rejecting", "remote", conn.RemoteAddr())
			conn.Close()
			continue
		}

		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetKeepAlive(true)
			_ = tcpConn.SetKeepAlivePeriod(30 * time.Second)
		}

		go s.handleConn(ctx, conn)
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	c := newClient(conn)
	if err := c.handshake(); err != nil {
		if s.metrics != nil {
			s.metrics.HandshakeFailures.Inc()
		}
		slog.Warn("handshake failed", "remote", c.remote, "error", err)
		return
	}
	c.id = newClientID()

	slog.Info("client authenticated", "client_id", c.id, "protocol", c.Protocol(), "remote", c.remote)

	select {
	case s.events <- event{kind: kindConnected, clientID: c.id, client: c, protocol: c.Protocol()}:
	case <-ctx.Done():
		return
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()

	go c.writePump()
	c.readLoop(s.events, done, s.readPool)
	close(done)
}

// coreLoop is the single goroutine that owns all game state (§4.6).
func (s *Server) coreLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.handleEvent(ev)
		}
	}
}

func (s *Server) handleEvent(ev event) {
	switch ev.kind {
	case kindConnected:
		s.mu.Lock()
		s.clients[ev.clientID] = ev.client
		s.protoVersions[ev.clientID] = ev.protocol
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.ConnectedClients.Inc()
		}
	case kindPacket:
		s.dispatch(ev.clientID, ev.packet)
	case kindDisconnected:
		s.handleCloseSocket(ev.clientID)
		s.mu.Lock()
		delete(s.clients, ev.clientID)
		delete(s.protoVersions, ev.clientID)
		s.mu.Unlock()
		if s.metrics != nil {
			s.metrics.ConnectedClients.Dec()
		}
		slog.Info("client disconnected", "client_id", ev.clientID)
	}
	if s.metrics != nil {
		s.metrics.ActiveSessions.Set(float64(s.games.Len()))
	}
}

func (s *Server) protocolVersion(clientID player.ClientID) uint8 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.protoVersions[clientID]
}

func (s *Server) clientByID(clientID player.ClientID) *Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[clientID]
}

// sendDirect sends pkt straight to clientID's socket, independent of game
// membership. This is the dispatcher's generic "Response(p)" semantics
// (§4.6) used by handlers whose caller need not be attached to a session
// yet (GAMES_LIST_QUERY, SERVER_TIME_QUERY, ATTACH_TO_GAME).
func (s *Server) sendDirect(clientID player.ClientID, pkt protocol.Packet) {
	if c := s.clientByID(clientID); c != nil {
		c.Send(protocol.Encode(pkt))
	}
}

// notify sends pkt to every client bound to a player in the caller's
// session for which include returns true. It is a no-op, logged, if the
// caller has no session (§4.6).
func (s *Server) notify(clientID player.ClientID, pkt protocol.Packet, include func(player.ClientID) bool) {
	g := s.games.ByClientID(clientID)
	if g == nil {
		slog.Warn("notify: caller has no session", "client_id", clientID)
		return
	}

	frame := protocol.Encode(pkt)
	for _, p := range g.Players {
		if !include(p.ClientID) {
			continue
		}
		if c := s.clientByID(p.ClientID); c != nil {
			c.Send(frame)
		}
	}
}

// notifyPlayer sends pkt only to cid.
func (s *Server) notifyPlayer(clientID player.ClientID, pkt protocol.Packet) {
	s.notify(clientID, pkt, func(id player.ClientID) bool { return id == clientID })
}

// notifyGame sends pkt to every session peer except cid.
func (s *Server) notifyGame(clientID player.ClientID, pkt protocol.Packet) {
	s.notify(clientID, pkt, func(id player.ClientID) bool { return id != clientID })
}

// notifyAll sends pkt to every client in the session including cid.
func (s *Server) notifyAll(clientID player.ClientID, pkt protocol.Packet) {
	s.notify(clientID, pkt, func(player.ClientID) bool { return true })
}

// uptimeSeconds returns seconds since the server process started, for
// SERVER_TIME_QUERY.
func (s *Server) uptimeSeconds() uint32 { return s.started.Seconds() }

func dispatchErrorf(action protocol.Action, err error) error {
	return fmt.Errorf("%s: %w", action, err)
}
