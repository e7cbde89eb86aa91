// Package player implements the per-connection player state machine: slot
// binding, authentication identity, and the statistics blob a client
// reports about itself.
package player

import (
	"errors"
	"fmt"
)

// ErrBindOutOfRange is returned when a slot id outside [1, 31] is requested.
var ErrBindOutOfRange = errors.New("player: bind id must be in [1, 31]")

// Bind is a session slot assigned to a player, 1..=31.
type Bind uint8

// NewBind validates id and wraps it as a Bind.
func NewBind(id uint8) (Bind, error) {
	if id < 1 || id > 31 {
		return 0, fmt.Errorf("%w: got %d", ErrBindOutOfRange, id)
	}
	return Bind(id), nil
}

// ID returns the raw slot number.
func (b Bind) ID() uint8 { return uint8(b) }

// Mask returns the bit addressing this slot in a DIRECT_SENDING recipient
// mask: bit (id-1).
func (b Bind) Mask() int32 { return 1 << (uint8(b) - 1) }
