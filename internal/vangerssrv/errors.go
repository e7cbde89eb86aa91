package vangerssrv

import "errors"

// Handshake failures (HANDSHAKE in the error taxonomy).
var (
	ErrHandshakeClosed     = errors.New("vangerssrv: connection closed during handshake")
	ErrHandshakeBadHeader  = errors.New("vangerssrv: handshake header mismatch")
	ErrHandshakeBadVersion = errors.New("vangerssrv: handshake protocol version must be 1 or 2")
	ErrHandshakeIO         = errors.New("vangerssrv: handshake write/read failed")
)

// STATE failures raised by handlers.
var (
	ErrNoSession         = errors.New("vangerssrv: caller has no session")
	ErrPlayerNotBound    = errors.New("vangerssrv: player has no session slot")
	ErrWorldEmpty        = errors.New("vangerssrv: player is not in a world")
	ErrWorldSizeMismatch = errors.New("vangerssrv: world already exists with a different y_size")
	ErrObjectNotFound    = errors.New("vangerssrv: object not present")
)

// PARSE/TRANSPORT failures raised by handlers.
var (
	ErrPayloadTooSmall = errors.New("vangerssrv: payload shorter than the handler requires")
)
