package vangerssrv

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vangers-srv/internal/config"
	"github.com/udisondev/vangers-srv/internal/protocol"
	"github.com/udisondev/vangers-srv/internal/testutil"
)

// dialAndHandshake opens a real TCP connection to addr and drives the
// fixed-literal handshake, returning the connection authenticated at the
// given protocol version.
func dialAndHandshake(t *testing.T, addr string, proto byte) *testutil.ConnWithDeadline {
	t.Helper()

	raw, err := (&net.Dialer{}).DialContext(context.Background(), "tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	conn := testutil.NewConnWithDeadline(raw, 2*time.Second)

	greeting := append([]byte(handshakeGreeting), 0x00, proto)
	_, err = conn.Write(greeting)
	require.NoError(t, err)

	buf := make([]byte, handshakeMaxBytes)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	require.Contains(t, string(buf[:n]), handshakeWelcome)

	return conn
}

func TestServerRunAcceptsConnectionAndHandshakes(t *testing.T) {
	ln, addr := testutil.ListenTCP(t)

	s := New(config.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx, ln)
	}()

	require.NoError(t, testutil.WaitForTCPReady(addr, 2*time.Second))

	conn := dialAndHandshake(t, addr, 1)

	attach := protocol.Encode(protocol.NewPacket(protocol.ActionAttachToGame, []byte{0, 0, 0, 0}))
	_, err := conn.Write(attach)
	require.NoError(t, err)

	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	require.NoError(t, err)

	var dec protocol.Decoder
	dec.Feed(buf[:n])
	pkt, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, protocol.ActionAttachToGameResponse, pkt.Action)

	cancel()
	testutil.WaitForCleanup(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second)
}

func TestServerRunRejectsBadHandshake(t *testing.T) {
	ln, addr := testutil.ListenTCP(t)

	s := New(config.Default(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = s.Run(ctx, ln) }()
	require.NoError(t, testutil.WaitForTCPReady(addr, 2*time.Second))

	raw, err := (&net.Dialer{}).DialContext(context.Background(), "tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	conn := testutil.NewConnWithDeadline(raw, 2*time.Second)

	_, err = conn.Write([]byte("not the right greeting\x00\x01"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, handshakeReject, string(buf[:n]))
}
