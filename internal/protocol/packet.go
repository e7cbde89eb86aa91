package protocol

import (
	"encoding/binary"
	"errors"
)

// Errors matching the FRAMING taxonomy. ErrNegativeFrameLength is fatal for
// the connection it occurred on; the remaining buffer is unreliable and
// must be discarded. ErrEmptyFrame is a single malformed frame (a length
// prefix with no room for the action byte) and does not require dropping
// the rest of the stream, since the frame boundary itself is still known.
var (
	ErrNegativeFrameLength = errors.New("protocol: negative frame length")
	ErrEmptyFrame          = errors.New("protocol: frame shorter than one action byte")
)

// Packet is one decoded wire frame. RawAction preserves the original action
// byte even when Action resolves to ActionUnknown, so an unrecognized
// packet can still be logged or re-encoded verbatim.
type Packet struct {
	Action    Action
	RawAction uint8
	Data      []byte
}

// NewPacket builds a packet for a known action, keeping RawAction in sync.
func NewPacket(action Action, data []byte) Packet {
	return Packet{Action: action, RawAction: uint8(action), Data: data}
}

// Encode produces the wire bytes for p: i16 LE length (action byte plus
// payload), the action byte, then the payload.
func Encode(p Packet) []byte {
	payloadLen := 1 + len(p.Data)
	buf := make([]byte, 2+payloadLen)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(payloadLen)))
	buf[2] = p.RawAction
	copy(buf[3:], p.Data)
	return buf
}

// Decoder accumulates bytes read off a connection and yields frames
// greedily as enough data arrives. It is not safe for concurrent use; the
// spec's per-connection reader is the only writer and reader of a Decoder.
type Decoder struct {
	buf []byte
}

// Feed appends freshly read bytes to the decode buffer.
func (d *Decoder) Feed(b []byte) {
	d.buf = append(d.buf, b...)
}

// Next pops the next complete frame off the buffer. ok is false when the
// buffer does not yet hold a full frame; the caller should read more bytes
// and call Feed again. A non-nil error with ErrNegativeFrameLength means
// the buffer has already been cleared and the connection must be dropped.
func (d *Decoder) Next() (pkt Packet, ok bool, err error) {
	if len(d.buf) < 2 {
		return Packet{}, false, nil
	}

	length := int16(binary.LittleEndian.Uint16(d.buf[0:2]))
	if length < 0 {
		d.buf = nil
		return Packet{}, false, ErrNegativeFrameLength
	}

	need := 2 + int(length)
	if len(d.buf) < need {
		return Packet{}, false, nil
	}

	frame := d.buf[2:need]
	d.buf = d.buf[need:]

	if len(frame) == 0 {
		return Packet{}, false, ErrEmptyFrame
	}

	rawAction := frame[0]
	data := append([]byte(nil), frame[1:]...)
	action, known := knownActions[rawAction]
	if !known {
		action = ActionUnknown
	}
	return Packet{Action: action, RawAction: rawAction, Data: data}, true, nil
}

// Pending returns the number of buffered bytes not yet returned as a frame.
func (d *Decoder) Pending() int {
	return len(d.buf)
}
