package game

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i32le(values ...int32) []byte {
	buf := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf
}

func TestParseConfigVanWar(t *testing.T) {
	data := i32le(1, int32(ModeVanWar), 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	_, err := ParseConfig(data[:len(data)-8], DefaultQuirks())
	assert.Error(t, err, "too-small tail is rejected")

	cfg, err := ParseConfig(data[:len(data)-4], DefaultQuirks())
	require.NoError(t, err)
	assert.EqualValues(t, 1, cfg.InitialRnd)
	assert.EqualValues(t, 3, cfg.InitialCash)
	assert.EqualValues(t, 4, cfg.ArtefactsUsing)
	assert.EqualValues(t, 5, cfg.InEscaveTime)
	assert.EqualValues(t, 6, cfg.Color)
	assert.Equal(t, ModeVanWar, cfg.Mode)

	vw, ok := cfg.Params.(VanWar)
	require.True(t, ok)
	assert.EqualValues(t, 7, vw.Nascency)
	assert.EqualValues(t, 8, vw.TeamMode)
	assert.EqualValues(t, 9, vw.WorldAccess)
	assert.EqualValues(t, 10, vw.MaxKills)
	assert.EqualValues(t, 1<<31-1, vw.MaxTime, "max_time is always overwritten with the bug-compat quirk on")
}

func TestParseConfigVanWarWithoutBugCompat(t *testing.T) {
	data := i32le(1, int32(ModeVanWar), 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	cfg, err := ParseConfig(data[:len(data)-4], Quirks{VanWarMaxTimeBugCompat: false})
	require.NoError(t, err)
	vw := cfg.Params.(VanWar)
	assert.EqualValues(t, 11, vw.MaxTime)
}

func TestParseConfigMechosoma(t *testing.T) {
	data := i32le(1, int32(ModeMechosoma), 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	cfg, err := ParseConfig(data[:len(data)-4], DefaultQuirks())
	require.NoError(t, err)
	m := cfg.Params.(Mechosoma)
	assert.EqualValues(t, 7, m.World)
	assert.EqualValues(t, 8, m.ProductQuantity1)
	assert.EqualValues(t, 9, m.ProductQuantity2)
	assert.EqualValues(t, 10, m.OneAtATime)
	assert.EqualValues(t, 11, m.TeamMode)
}

func TestParseConfigPassemblossRealExample(t *testing.T) {
	slice := []byte{
		207, 204, 22, 84, 2, 0, 0, 0, 160, 134, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	cfg, err := ParseConfig(slice, DefaultQuirks())
	require.NoError(t, err)
	assert.Equal(t, ModePassembloss, cfg.Mode)
	assert.EqualValues(t, 100000, cfg.InitialCash)
	assert.EqualValues(t, 0, cfg.ArtefactsUsing)
	p := cfg.Params.(Passembloss)
	assert.EqualValues(t, 10, p.CheckpointsNumber)
	assert.EqualValues(t, 0, p.RandomEscave)
}

func TestParseConfigHuntageHasNoTail(t *testing.T) {
	data := i32le(1, int32(ModeHuntage), 3, 4, 5, 6, 7)
	cfg, err := ParseConfig(data[:len(data)-4], DefaultQuirks())
	require.NoError(t, err)
	assert.Nil(t, cfg.Params)
}

func TestParseConfigUndefinedModeRejected(t *testing.T) {
	data := i32le(1, -1, 3, 4, 5, 6, 7, 8)
	_, err := ParseConfig(data, DefaultQuirks())
	assert.Error(t, err)

	data = i32le(1, 6, 3, 4, 5, 6, 7, 8)
	_, err = ParseConfig(data, DefaultQuirks())
	assert.Error(t, err)
}

func TestConfigRoundTrip(t *testing.T) {
	cfg, err := NewDefaultConfig(ModeMustodont)
	require.NoError(t, err)
	encoded := cfg.ToVangersBytes()

	decoded, err := ParseConfig(encoded, DefaultQuirks())
	require.NoError(t, err)
	assert.Equal(t, cfg.Mode, decoded.Mode)
	assert.Equal(t, cfg.Params, decoded.Params)
}
