// Package vanject implements the Vangers object model: the bit-packed
// identity encoding and the create/update/serialize operations a session
// applies to every object a client introduces into the world.
package vanject

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Type codes carried in bits 21..16 of an object id. Only VANGER has
// dedicated handling in the dispatcher (it mirrors the player's position
// and triggers an extra PLAYERS_POSITION broadcast); the rest classify an
// object as private/global for world-exit cleanup.
const (
	TypeGlobal  = 0
	TypeDevice  = 1
	TypeSlot    = 2
	TypeShell   = 3
	TypeVanger  = 9
	TypeStuff   = 11
	TypeSensor  = 12
	TypeTNT     = 14
	TypeTerrain = 15
)

var (
	ErrSliceTooSmall = errors.New("vanject: slice too small")
	ErrMismatchID    = errors.New("vanject: mismatched id on update")
)

// TypeCode extracts bits 21..16 of id.
func TypeCode(id int32) int32 { return (id >> 16) & 63 }

// Station extracts bits 30..26 of id: the owning client's station slot.
func Station(id int32) int32 { return (id >> 26) & 31 }

// World extracts bits 25..22 of id: the world index the object lives in.
func World(id int32) int32 { return (id >> 22) & 15 }

// IsStatic reports whether bit 31 (the static terrain/sensor/TNT flag) is set.
func IsStatic(id int32) bool { return uint32(id)&(1<<31) != 0 }

// IsPlayers reports whether id belongs to a player's own slot rather than a
// world-owned fixture.
func IsPlayers(id int32) bool { return uint32(id)&(7<<19) == 0 }

// IsPrivate reports whether id is tied to a player's inventory/avatar and
// must be destroyed when that player leaves its world.
func IsPrivate(id int32) bool {
	t := TypeCode(id)
	return t >= 8 && t <= 10
}

// IsNonGlobal reports whether id lives in a World rather than in the
// session's global object map.
func IsNonGlobal(id int32) bool { return TypeCode(id) != 0 }

// Pos is a little-endian (x, y) coordinate pair as sent on the wire.
type Pos struct {
	X, Y int16
}

// ToVangersBytes serializes the position as x then y, little-endian.
func (p Pos) ToVangersBytes() []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(p.X))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(p.Y))
	return buf
}

// Vanject is a single object instance tracked by a session or world.
type Vanject struct {
	ID            int32
	PlayerBindID  uint8
	Time          int32
	Pos           Pos
	Radius        int16
	Body          []byte
}

// GetType returns the object's type code (bits 21..16 of ID).
func (v *Vanject) GetType() int32 { return TypeCode(v.ID) }

// GetStation returns the owning station slot (bits 30..26 of ID).
func (v *Vanject) GetStation() int32 { return Station(v.ID) }

// GetWorld returns the world index encoded in ID (bits 25..22).
func (v *Vanject) GetWorld() int32 { return World(v.ID) }

// IsPlayers reports whether this object occupies a player's own slot.
func (v *Vanject) IsPlayers() bool { return IsPlayers(v.ID) }

// IsPrivate reports whether this object is destroyed on world exit.
func (v *Vanject) IsPrivate() bool { return IsPrivate(v.ID) }

// IsNonGlobal reports whether this object belongs to a World rather than
// the session's global map.
func (v *Vanject) IsNonGlobal() bool { return IsNonGlobal(v.ID) }

// BindToPlayer stamps the slot id that will be echoed in CREATE_OBJECT/
// UPDATE_OBJECT fan-out; it never touches the wire id itself.
func (v *Vanject) BindToPlayer(slot uint8) {
	v.PlayerBindID = slot
}

// CreateFromSlice parses a CREATE_OBJECT payload. VANGER objects carry one
// extra byte (the half-height of the client's screen) between the fixed
// header and the opaque body that the server does not interpret.
func CreateFromSlice(slice []byte) (*Vanject, error) {
	if len(slice) < 14 {
		return nil, ErrSliceTooSmall
	}

	id := int32(binary.LittleEndian.Uint32(slice[0:4]))
	t := int32(binary.LittleEndian.Uint32(slice[4:8]))
	pos := Pos{
		X: int16(binary.LittleEndian.Uint16(slice[8:10])),
		Y: int16(binary.LittleEndian.Uint16(slice[10:12])),
	}
	radius := int16(binary.LittleEndian.Uint16(slice[12:14]))

	var body []byte
	if TypeCode(id) == TypeVanger {
		if len(slice) < 15 {
			return nil, ErrSliceTooSmall
		}
		body = slice[15:]
	} else {
		body = slice[14:]
	}

	return &Vanject{
		ID:     id,
		Time:   t,
		Pos:    pos,
		Radius: radius,
		Body:   append([]byte(nil), body...),
	}, nil
}

// UpdateFromSlice applies a VANGERS UPDATE_OBJECT payload in place. Radius
// is preserved; only time, position, and body are overwritten.
func (v *Vanject) UpdateFromSlice(slice []byte) error {
	if len(slice) < 12 {
		return ErrSliceTooSmall
	}

	id := int32(binary.LittleEndian.Uint32(slice[0:4]))
	if id != v.ID {
		return fmt.Errorf("%w: stored=%d given=%d", ErrMismatchID, v.ID, id)
	}

	t := int32(binary.LittleEndian.Uint32(slice[4:8]))
	pos := Pos{
		X: int16(binary.LittleEndian.Uint16(slice[8:10])),
		Y: int16(binary.LittleEndian.Uint16(slice[10:12])),
	}

	var body []byte
	if TypeCode(id) == TypeVanger {
		if len(slice) < 13 {
			return ErrSliceTooSmall
		}
		body = slice[13:]
	} else {
		body = slice[12:]
	}

	v.Time = t
	v.Pos = pos
	v.Body = append([]byte(nil), body...)
	return nil
}

// ToVangersBytes serializes the object for CREATE_OBJECT/UPDATE_OBJECT
// fan-out: id, the server-assigned slot byte, time, position, body. The
// client recovers the object's type from id, so the id field is never
// rewritten here.
func (v *Vanject) ToVangersBytes() []byte {
	buf := make([]byte, 0, 11+len(v.Body))
	var tmp [4]byte

	binary.LittleEndian.PutUint32(tmp[:], uint32(v.ID))
	buf = append(buf, tmp[:]...)

	buf = append(buf, v.PlayerBindID)

	binary.LittleEndian.PutUint32(tmp[:], uint32(v.Time))
	buf = append(buf, tmp[:]...)

	var tmp2 [2]byte
	binary.LittleEndian.PutUint16(tmp2[:], uint16(v.Pos.X))
	buf = append(buf, tmp2[:]...)
	binary.LittleEndian.PutUint16(tmp2[:], uint16(v.Pos.Y))
	buf = append(buf, tmp2[:]...)

	buf = append(buf, v.Body...)
	return buf
}
