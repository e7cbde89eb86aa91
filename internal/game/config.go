package game

import (
	"encoding/binary"
	"errors"
)

const configHeaderSize = 6 * 4

// ErrConfigTooSmall is returned when a SET_GAME_DATA payload is shorter
// than the 6x i32 shared header.
var ErrConfigTooSmall = errors.New("game: config slice shorter than shared header")

// ErrConfigUnknownMode is returned for a game_type value that isn't a
// recognized Mode, or one whose mandatory tail doesn't fit in the slice.
var ErrConfigUnknownMode = errors.New("game: config has an unrecognized or truncated mode tail")

// Quirks toggles reproduction of source-server oddities that a literal
// reading of the wire format would not otherwise produce.
type Quirks struct {
	// VanWarMaxTimeBugCompat reproduces the source server always reporting
	// max_time as MaxInt32 regardless of what the client sent, rather than
	// round-tripping the wire value. Defaults to true (matches the source).
	VanWarMaxTimeBugCompat bool
}

// DefaultQuirks matches the source server's observed behavior exactly.
func DefaultQuirks() Quirks {
	return Quirks{VanWarMaxTimeBugCompat: true}
}

// Config is a game's ruleset: a shared header plus a mode-specific tail.
type Config struct {
	InitialRnd     int32
	InitialCash    int32
	ArtefactsUsing int32
	InEscaveTime   int32
	Color          int32
	Mode           Mode
	Params         ModeParams // nil for ModeMirRage and ModeHuntage
}

// NewDefaultConfig builds a Config for mode with the source's default
// per-mode tail values and the usual shared-header defaults.
func NewDefaultConfig(mode Mode) (*Config, error) {
	cfg := &Config{
		InitialRnd:   1,
		InitialCash:  100000,
		InEscaveTime: 60,
		Mode:         mode,
	}
	switch mode {
	case ModeVanWar:
		p := defaultVanWar()
		cfg.Params = p
	case ModeMechosoma:
		p := defaultMechosoma()
		cfg.Params = p
	case ModePassembloss:
		p := defaultPassembloss()
		cfg.Params = p
	case ModeMirRage, ModeHuntage:
		// no tail
	case ModeMustodont:
		cfg.Params = Mustodont{}
	default:
		return nil, ErrConfigUnknownMode
	}
	return cfg, nil
}

// ParseConfig decodes a SET_GAME_DATA config payload.
func ParseConfig(slice []byte, quirks Quirks) (*Config, error) {
	if len(slice) < configHeaderSize {
		return nil, ErrConfigTooSmall
	}

	cfg := &Config{
		InitialRnd:     int32(binary.LittleEndian.Uint32(slice[0:4])),
		ArtefactsUsing: int32(binary.LittleEndian.Uint32(slice[12:16])),
		InEscaveTime:   int32(binary.LittleEndian.Uint32(slice[16:20])),
		Color:          int32(binary.LittleEndian.Uint32(slice[20:24])),
	}
	cfg.InitialCash = int32(binary.LittleEndian.Uint32(slice[8:12]))
	mode := Mode(int32(binary.LittleEndian.Uint32(slice[4:8])))
	cfg.Mode = mode

	tail := slice[configHeaderSize:]
	switch mode {
	case ModeVanWar:
		if len(tail) < vanWarSize {
			return nil, ErrConfigUnknownMode
		}
		cfg.Params = parseVanWar(tail, quirks.VanWarMaxTimeBugCompat)
	case ModeMechosoma:
		if len(tail) < mechosomaSize {
			return nil, ErrConfigUnknownMode
		}
		cfg.Params = parseMechosoma(tail)
	case ModePassembloss:
		if len(tail) < passemblossSize {
			return nil, ErrConfigUnknownMode
		}
		cfg.Params = parsePassembloss(tail)
	case ModeMustodont:
		if len(tail) < mustodontSize {
			return nil, ErrConfigUnknownMode
		}
		cfg.Params = parseMustodont(tail)
	case ModeHuntage, ModeMirRage:
		cfg.Params = nil
	default:
		return nil, ErrConfigUnknownMode
	}

	return cfg, nil
}

// ToVangersBytes serializes the config back to wire format.
func (c *Config) ToVangersBytes() []byte {
	buf := make([]byte, configHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.InitialRnd))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(c.Mode))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c.InitialCash))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(c.ArtefactsUsing))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(c.InEscaveTime))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(c.Color))
	if c.Params != nil {
		buf = append(buf, c.Params.ToVangersBytes()...)
	}
	return buf
}
