package testutil

import (
	"net"
	"testing"
	"time"
)

// PipeConn creates a pair of in-memory net.Conn endpoints via net.Pipe.
// Both ends are closed automatically when the test finishes.
func PipeConn(t testing.TB) (client, server net.Conn) {
	t.Helper()

	server, client = net.Pipe()

	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})

	return client, server
}

// FakeAddr implements net.Addr for tests that need a net.Conn without a
// real socket underneath.
type FakeAddr struct {
	NetworkName string
	AddrString  string
}

func (f FakeAddr) Network() string { return f.NetworkName }
func (f FakeAddr) String() string  { return f.AddrString }

// NewFakeAddr builds a FakeAddr.
func NewFakeAddr(network, addr string) FakeAddr {
	return FakeAddr{
		NetworkName: network,
		AddrString:  addr,
	}
}

// TCPAddr builds a FakeAddr for a TCP connection.
func TCPAddr(addr string) FakeAddr {
	return NewFakeAddr("tcp", addr)
}

// ConnWithDeadline wraps a net.Conn and sets a fresh read/write deadline on
// every call, the way a handshake that must not hang forever would.
type ConnWithDeadline struct {
	net.Conn
	deadline time.Duration
}

// NewConnWithDeadline wraps conn with an automatic per-call deadline.
func NewConnWithDeadline(conn net.Conn, deadline time.Duration) *ConnWithDeadline {
	return &ConnWithDeadline{
		Conn:     conn,
		deadline: deadline,
	}
}

func (c *ConnWithDeadline) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.deadline)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

func (c *ConnWithDeadline) Write(b []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.deadline)); err != nil {
		return 0, err
	}
	return c.Conn.Write(b)
}

// ListenTCP opens a TCP listener on a random free port for tests, returning
// the listener and its address as "host:port". The listener closes
// automatically when the test finishes.
func ListenTCP(t testing.TB) (net.Listener, string) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create TCP listener: %v", err)
	}

	t.Cleanup(func() {
		_ = listener.Close()
	})

	return listener, listener.Addr().String()
}
