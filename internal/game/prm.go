package game

import "encoding/binary"

// ModeParams is the mode-specific tail appended after a Config's shared
// header. MirRage and Huntage carry no tail and have no ModeParams value.
type ModeParams interface {
	ToVangersBytes() []byte
}

const (
	vanWarSize      = 5 * 4
	mechosomaSize   = 5 * 4
	passemblossSize = 2 * 4
	mustodontSize   = 2 * 4
)

// VanWar is the VAN_WAR ruleset's tail.
type VanWar struct {
	Nascency    int32
	TeamMode    int32
	WorldAccess int32
	MaxKills    int32
	MaxTime     uint32
}

func defaultVanWar() VanWar {
	return VanWar{MaxKills: 100, MaxTime: 6000}
}

// parseVanWar reads slice as a VanWar tail. When bugCompat is set, MaxTime
// is overwritten to math.MaxInt32 after parsing regardless of the wire
// value, reproducing the source server's from_slice behavior.
func parseVanWar(slice []byte, bugCompat bool) VanWar {
	v := VanWar{
		Nascency:    int32(binary.LittleEndian.Uint32(slice[0:4])),
		TeamMode:    int32(binary.LittleEndian.Uint32(slice[4:8])),
		WorldAccess: int32(binary.LittleEndian.Uint32(slice[8:12])),
		MaxKills:    int32(binary.LittleEndian.Uint32(slice[12:16])),
		MaxTime:     binary.LittleEndian.Uint32(slice[16:20]),
	}
	if bugCompat {
		v.MaxTime = 1<<31 - 1
	}
	return v
}

func (v VanWar) ToVangersBytes() []byte {
	buf := make([]byte, vanWarSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(v.Nascency))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(v.TeamMode))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(v.WorldAccess))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(v.MaxKills))
	binary.LittleEndian.PutUint32(buf[16:20], v.MaxTime)
	return buf
}

// Mechosoma is the MECHOSOMA ruleset's tail.
type Mechosoma struct {
	World            int32
	ProductQuantity1 int32
	ProductQuantity2 int32
	OneAtATime       int32
	TeamMode         int32
}

func defaultMechosoma() Mechosoma {
	return Mechosoma{ProductQuantity1: 10, ProductQuantity2: 10, OneAtATime: 10}
}

func parseMechosoma(slice []byte) Mechosoma {
	return Mechosoma{
		World:            int32(binary.LittleEndian.Uint32(slice[0:4])),
		ProductQuantity1: int32(binary.LittleEndian.Uint32(slice[4:8])),
		ProductQuantity2: int32(binary.LittleEndian.Uint32(slice[8:12])),
		OneAtATime:       int32(binary.LittleEndian.Uint32(slice[12:16])),
		TeamMode:         int32(binary.LittleEndian.Uint32(slice[16:20])),
	}
}

func (m Mechosoma) ToVangersBytes() []byte {
	buf := make([]byte, mechosomaSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.World))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(m.ProductQuantity1))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(m.ProductQuantity2))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(m.OneAtATime))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(m.TeamMode))
	return buf
}

// Passembloss is the PASSEMBLOSS ruleset's tail.
type Passembloss struct {
	CheckpointsNumber int32
	RandomEscave      int32
}

func defaultPassembloss() Passembloss {
	return Passembloss{CheckpointsNumber: 10}
}

func parsePassembloss(slice []byte) Passembloss {
	return Passembloss{
		CheckpointsNumber: int32(binary.LittleEndian.Uint32(slice[0:4])),
		RandomEscave:      int32(binary.LittleEndian.Uint32(slice[4:8])),
	}
}

func (p Passembloss) ToVangersBytes() []byte {
	buf := make([]byte, passemblossSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.CheckpointsNumber))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.RandomEscave))
	return buf
}

// Mustodont is the MUSTODONT ruleset's tail.
type Mustodont struct {
	UniqueMechosName int32
	TeamMode         int32
}

func parseMustodont(slice []byte) Mustodont {
	return Mustodont{
		UniqueMechosName: int32(binary.LittleEndian.Uint32(slice[0:4])),
		TeamMode:         int32(binary.LittleEndian.Uint32(slice[4:8])),
	}
}

func (m Mustodont) ToVangersBytes() []byte {
	buf := make([]byte, mustodontSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(m.UniqueMechosName))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(m.TeamMode))
	return buf
}
