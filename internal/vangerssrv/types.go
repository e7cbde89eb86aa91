// Package vangerssrv wires internal/protocol, internal/vanject, internal/player
// and internal/game into the TCP session server: the handshake, the per-client
// read/write goroutines, and the single-threaded dispatcher that owns all game
// state.
package vangerssrv

// ConnState is the lifecycle of one accepted TCP connection.
type ConnState int32

const (
	StateConnected ConnState = iota
	StateAuthenticated
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateDisconnected:
		return "DISCONNECTED"
	default:
		return "UNKNOWN"
	}
}
