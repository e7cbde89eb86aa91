package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Packet{
		NewPacket(ActionGamesListQuery, nil),
		NewPacket(ActionGamesListResponse, []byte{0x00}),
		NewPacket(ActionAttachToGame, []byte{0x00, 0x00, 0x00, 0x00}),
		{Action: ActionUnknown, RawAction: 0x7F, Data: []byte{1, 2, 3}},
	}

	for _, want := range cases {
		wire := Encode(want)
		var dec Decoder
		dec.Feed(wire)
		got, ok, err := dec.Next()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, want.Action, got.Action)
		assert.Equal(t, want.RawAction, got.RawAction)
		assert.Equal(t, want.Data, got.Data)
		assert.Equal(t, 0, dec.Pending())
	}
}

func TestDecodeGreedyMultiplePackets(t *testing.T) {
	p1 := NewPacket(ActionGamesListQuery, nil)
	p2 := NewPacket(ActionServerTimeQuery, nil)
	var dec Decoder
	dec.Feed(append(Encode(p1), Encode(p2)...))

	got1, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ActionGamesListQuery, got1.Action)

	got2, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ActionServerTimeQuery, got2.Action)

	_, ok, err = dec.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeRetainsTailOnShortRead(t *testing.T) {
	full := Encode(NewPacket(ActionCloseSocket, nil))
	var dec Decoder
	dec.Feed(full[:len(full)-1])

	_, ok, err := dec.Next()
	require.NoError(t, err)
	require.False(t, ok)
	assert.Equal(t, len(full)-1, dec.Pending())

	dec.Feed(full[len(full)-1:])
	got, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ActionCloseSocket, got.Action)
}

func TestDecodeNegativeLengthIsFatal(t *testing.T) {
	var dec Decoder
	dec.Feed([]byte{0xFF, 0xFF, 0x81})

	_, ok, err := dec.Next()
	require.ErrorIs(t, err, ErrNegativeFrameLength)
	assert.False(t, ok)
	assert.Equal(t, 0, dec.Pending())
}

func TestDecodeUnknownActionPreservesRawByte(t *testing.T) {
	wire := []byte{0x02, 0x00, 0xAA, 0x01}
	var dec Decoder
	dec.Feed(wire)

	got, ok, err := dec.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ActionUnknown, got.Action)
	assert.Equal(t, uint8(0xAA), got.RawAction)
	assert.Equal(t, []byte{0x01}, got.Data)
	assert.Equal(t, wire, Encode(got))
}

// S2: after handshake, GAMES_LIST_QUERY with no sessions replies with
// count=0.
func TestScenarioS2ListEmpty(t *testing.T) {
	req := Encode(NewPacket(ActionGamesListQuery, nil))
	assert.Equal(t, []byte{0x01, 0x00, 0x81}, req)

	resp := Encode(NewPacket(ActionGamesListResponse, []byte{0x00}))
	assert.Equal(t, []byte{0x02, 0x00, 0xC1, 0x00}, resp)
}

// S4: REGISTER_NAME request and the PLAYERS_NAME broadcast it produces.
func TestScenarioS4RegisterName(t *testing.T) {
	req := Encode(NewPacket(ActionRegisterName, []byte("Alice\x00\x00")))
	assert.Equal(t, []byte{0x08, 0x00, 0x88, 'A', 'l', 'i', 'c', 'e', 0x00, 0x00}, req)

	resp := Encode(NewPacket(ActionPlayersName, append([]byte{0x01}, "Alice\x00"...)))
	assert.Equal(t, []byte{0x08, 0x00, 0xD5, 0x01, 'A', 'l', 'i', 'c', 'e', 0x00}, resp)
}

func TestResponseFor(t *testing.T) {
	a, ok := ResponseFor(ActionSetGameData)
	assert.False(t, ok)
	assert.Equal(t, ActionUnknown, a)

	a, ok = ResponseFor(ActionDirectSending)
	assert.True(t, ok)
	assert.Equal(t, ActionDirectReceiving, a)
}
