package player

import (
	"errors"
	"fmt"

	"github.com/udisondev/vangers-srv/internal/vanject"
)

// ClientID is the random 64-bit id minted for a connection on accept. It is
// the join key between a Client and its Player; Player never holds a
// pointer back to a Client or to a World, only this id and a world id.
type ClientID uint64

// Status is a player's progression through a session.
type Status int

const (
	StatusInitial Status = iota
	StatusGaming
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusInitial:
		return "INITIAL"
	case StatusGaming:
		return "GAMING"
	case StatusFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// ErrNameTooShortForAuth is returned by SetAuth when its precondition (a
// null-terminated cstring of length >= 2) is violated by the caller.
var ErrNameTooShortForAuth = errors.New("player: set_auth requires a null-terminated name of length >= 2")

// Player is one connected client's game-facing state. It holds only
// WorldID (never a pointer into the session's World map) so the session
// remains the sole owner of Player/World lifetime.
type Player struct {
	ClientID ClientID
	Bind     *Bind
	Auth     *Auth
	Body     *Body
	WorldID  *uint8
	Pos      vanject.Pos
	Status   Status
}

// New creates a fresh, unbound player for a newly attached client.
func New(clientID ClientID) *Player {
	return &Player{ClientID: clientID, Status: StatusInitial}
}

// SetBind assigns a slot; 0 clears both the bind and any registered auth,
// mirroring the source's treatment of an unbind as forgetting identity too.
func (p *Player) SetBind(id uint8) error {
	if id == 0 {
		p.Bind = nil
		p.Auth = nil
		return nil
	}
	b, err := NewBind(id)
	if err != nil {
		return err
	}
	p.Bind = &b
	return nil
}

// SetAuth validates that name is a null-terminated cstring of length >= 2
// and stores a fresh Auth built from name/pwd.
func (p *Player) SetAuth(name, pwd []byte) error {
	if len(name) <= 1 || name[len(name)-1] != 0 {
		return fmt.Errorf("%w: got %q", ErrNameTooShortForAuth, name)
	}
	auth := NewAuth(name, pwd)
	p.Auth = &auth
	return nil
}

// SetBody parses slice into the player's stats blob.
func (p *Player) SetBody(slice []byte) error {
	b, err := ParseBody(slice)
	if err != nil {
		return err
	}
	p.Body = b
	return nil
}

// IsBound reports whether the player currently holds a session slot.
func (p *Player) IsBound() bool { return p.Bind != nil }

// IsInWorld reports whether the player currently references a world.
func (p *Player) IsInWorld() bool { return p.WorldID != nil }
