package player

import (
	"encoding/binary"
	"errors"
	"math"
)

// bodyBaseSize is the fixed-layout portion of a Body, excluding the
// mode-specific stats tail.
const bodyBaseSize = 1 + 1 + 1 + 1 + 4 + 4 + 1 + 2 + 2 + 4 + 4

// ErrBodyTooSmall is returned when a SET_PLAYER_DATA payload is shorter
// than the fixed 25-byte body layout.
var ErrBodyTooSmall = errors.New("player: body slice shorter than 25 bytes")

// Body is the fixed statistics blob a client reports about its player,
// followed by a mode-dependent tail the server stores and echoes opaquely.
type Body struct {
	Kills     uint8
	Deaths    uint8
	Color     uint8
	World     uint8
	Beebos    uint32
	Rating    float32
	CarIndex  uint8
	Data1     int16
	Data2     int16
	BirthTime uint32
	NetID     int32
	Stats     []byte
}

// ParseBody decodes a Body from a SET_PLAYER_DATA payload.
func ParseBody(slice []byte) (*Body, error) {
	if len(slice) < bodyBaseSize {
		return nil, ErrBodyTooSmall
	}

	b := &Body{
		Kills:     slice[0],
		Deaths:    slice[1],
		Color:     slice[2],
		World:     slice[3],
		Beebos:    binary.LittleEndian.Uint32(slice[4:8]),
		Rating:    math.Float32frombits(binary.LittleEndian.Uint32(slice[8:12])),
		CarIndex:  slice[12],
		Data1:     int16(binary.LittleEndian.Uint16(slice[13:15])),
		Data2:     int16(binary.LittleEndian.Uint16(slice[15:17])),
		BirthTime: binary.LittleEndian.Uint32(slice[17:21]),
		NetID:     int32(binary.LittleEndian.Uint32(slice[21:25])),
		Stats:     append([]byte(nil), slice[25:]...),
	}
	return b, nil
}

// ToVangersBytes serializes the body back to wire format.
func (b *Body) ToVangersBytes() []byte {
	buf := make([]byte, bodyBaseSize, bodyBaseSize+len(b.Stats))
	buf[0] = b.Kills
	buf[1] = b.Deaths
	buf[2] = b.Color
	buf[3] = b.World
	binary.LittleEndian.PutUint32(buf[4:8], b.Beebos)
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(b.Rating))
	buf[12] = b.CarIndex
	binary.LittleEndian.PutUint16(buf[13:15], uint16(b.Data1))
	binary.LittleEndian.PutUint16(buf[15:17], uint16(b.Data2))
	binary.LittleEndian.PutUint32(buf[17:21], b.BirthTime)
	binary.LittleEndian.PutUint32(buf[21:25], uint32(b.NetID))
	return append(buf, b.Stats...)
}
