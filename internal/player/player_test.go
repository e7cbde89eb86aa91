package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthEmptyNameGetsRandomDefault(t *testing.T) {
	auth := NewAuth(nil, nil)
	assert.Equal(t, "Player-", string(auth.Name[:7]))
	assert.Equal(t, byte(0), auth.Name[len(auth.Name)-1])
	assert.Nil(t, auth.Pwd)
}

func TestNewAuthAppendsMissingNul(t *testing.T) {
	auth := NewAuth([]byte("test-auth"), nil)
	assert.Equal(t, []byte("test-auth\x00"), auth.Name)
}

func TestNewAuthKeepsExistingNul(t *testing.T) {
	auth := NewAuth([]byte("test-auth\x00"), nil)
	assert.Equal(t, []byte("test-auth\x00"), auth.Name)
}

func TestNewAuthHashesNonEmptyPassword(t *testing.T) {
	auth := NewAuth([]byte("login"), []byte("pwd"))
	require.NotNil(t, auth.Pwd)
}

func TestExtractAuthDataCorrect(t *testing.T) {
	name, pwd, err := ExtractAuthData([]byte("auth\x00pwd\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []byte("auth"), name)
	assert.Equal(t, []byte("pwd"), pwd)

	name, pwd, err = ExtractAuthData([]byte("auth\x00pwd\x00"))
	require.NoError(t, err)
	assert.Equal(t, []byte("auth"), name)
	assert.Equal(t, []byte("pwd"), pwd)
}

func TestExtractAuthDataTruncatesLongNames(t *testing.T) {
	name, pwd, err := ExtractAuthData([]byte("123456789_123456\x00pwd\x00"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123456789_123456"), name, "16-byte name is kept as-is")
	assert.Equal(t, []byte("pwd"), pwd)

	name, _, err = ExtractAuthData([]byte("123456789_1234567\x00pwd\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123456789_12345"), name, "17-byte name is shrunk to 15")

	name, pwd, err = ExtractAuthData([]byte("123456789_123456789_123\x00\x00pwd\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123456789_12345"), name)
	assert.Equal(t, []byte{}, pwd, "password is allowed to be empty")
}

func TestExtractAuthDataErrors(t *testing.T) {
	_, _, err := ExtractAuthData([]byte{})
	assert.ErrorIs(t, err, ErrAuthParse)

	_, _, err = ExtractAuthData([]byte{0})
	assert.ErrorIs(t, err, ErrNameIsNull)

	_, _, err = ExtractAuthData([]byte("auth"))
	assert.ErrorIs(t, err, ErrAuthParse)

	_, _, err = ExtractAuthData([]byte("auth\x00"))
	assert.ErrorIs(t, err, ErrAuthParse)
}

func TestBindMaskAndRange(t *testing.T) {
	b, err := NewBind(4)
	require.NoError(t, err)
	assert.Equal(t, int32(1<<3), b.Mask())

	_, err = NewBind(0)
	assert.ErrorIs(t, err, ErrBindOutOfRange)

	_, err = NewBind(32)
	assert.ErrorIs(t, err, ErrBindOutOfRange)
}

func TestPlayerSetBindZeroClearsAuthToo(t *testing.T) {
	p := New(1)
	require.NoError(t, p.SetBind(4))
	require.NoError(t, p.SetAuth([]byte("name\x00"), nil))
	require.NoError(t, p.SetBind(0))
	assert.Nil(t, p.Bind)
	assert.Nil(t, p.Auth)
}

func TestPlayerSetAuthRejectsNonCString(t *testing.T) {
	p := New(1)
	assert.ErrorIs(t, p.SetAuth([]byte("a"), nil), ErrNameTooShortForAuth)
	assert.ErrorIs(t, p.SetAuth([]byte("ab"), nil), ErrNameTooShortForAuth)
}

func TestParseBodyRoundTrip(t *testing.T) {
	base := []byte{1, 2, 3, 4}
	base = append(base, le32(5)...)
	base = append(base, leF32(6)...)
	base = append(base, 7)
	base = append(base, le16(8)...)
	base = append(base, le16(9)...)
	base = append(base, le32(10)...)
	base = append(base, le32(11)...)
	stats := append(le32(20), le32(21)...)
	base = append(base, stats...)

	b, err := ParseBody(base)
	require.NoError(t, err)
	assert.EqualValues(t, 1, b.Kills)
	assert.EqualValues(t, 2, b.Deaths)
	assert.EqualValues(t, 3, b.Color)
	assert.EqualValues(t, 4, b.World)
	assert.EqualValues(t, 5, b.Beebos)
	assert.InDelta(t, 6.0, b.Rating, 0.0001)
	assert.EqualValues(t, 7, b.CarIndex)
	assert.EqualValues(t, 8, b.Data1)
	assert.EqualValues(t, 9, b.Data2)
	assert.EqualValues(t, 10, b.BirthTime)
	assert.EqualValues(t, 11, b.NetID)
	assert.Equal(t, stats, b.Stats)

	assert.Equal(t, base, b.ToVangersBytes())
}

func TestParseBodyTooSmall(t *testing.T) {
	for _, s := range [][]byte{nil, {1}, {1, 2, 3, 4, 5, 6}} {
		_, err := ParseBody(s)
		assert.ErrorIs(t, err, ErrBodyTooSmall)
	}
}

func le16(v int16) []byte { return []byte{byte(v), byte(v >> 8)} }
func le32(v int32) []byte {
	u := uint32(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}
func leF32(v float32) []byte {
	u := math.Float32bits(v)
	return []byte{byte(u), byte(u >> 8), byte(u >> 16), byte(u >> 24)}
}
