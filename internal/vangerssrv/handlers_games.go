package vangerssrv

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/udisondev/vangers-srv/internal/game"
	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

// handleGamesListQuery lists every configured game as a one-line title the
// client shows in its server browser.
func handleGamesListQuery(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	var configured []*game.Game
	s.games.Each(func(g *game.Game) {
		if g.IsConfigured() {
			configured = append(configured, g)
		}
	})

	data := []byte{byte(len(configured))}
	for _, g := range configured {
		idBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(idBytes, g.ID)
		data = append(data, idBytes...)
		data = append(data, gameTitle(g)...)
	}

	s.sendDirect(clientID, protocol.NewPacket(protocol.ActionGamesListResponse, data))
	return nil
}

func gameTitle(g *game.Game) []byte {
	name := bytes.TrimRight(g.Name, "\x00")
	if len(name) == 0 {
		name = []byte("[UNDEFINED TITLE]")
	}
	tail := fmt.Sprintf(": %d %c %s", len(g.Players), g.Mode().Letter(), g.BirthTime.String())
	title := append([]byte("[VANGERS-SRV] "), name...)
	title = append(title, []byte(tail)...)
	return append(title, 0)
}

// handleServerTimeQuery answers with the server's uptime scaled the way the
// client expects, 256 ticks per second.
func handleServerTimeQuery(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, s.uptimeSeconds()*256)
	s.sendDirect(clientID, protocol.NewPacket(protocol.ActionServerTime, data))
	return nil
}

const vanjectOffsetSlots = 16

// handleAttachToGame creates or joins a session, assigns the caller a
// player slot, and replays every object already live in that session so
// the joining client can rebuild its view of the world.
func handleAttachToGame(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	if len(pkt.Data) != 4 {
		return fmt.Errorf("%w: ATTACH_TO_GAME needs 4 bytes, got %d", ErrPayloadTooSmall, len(pkt.Data))
	}
	gmid := binary.LittleEndian.Uint32(pkt.Data)

	var g *game.Game
	if gmid == 0 {
		gmid = s.games.NextID()
		var err error
		g, err = s.games.Create(gmid)
		if err != nil {
			return err
		}
	} else {
		g = s.games.ByID(gmid)
		if g == nil {
			return fmt.Errorf("%w: game id=%d", ErrNoSession, gmid)
		}
	}

	slot, err := g.AttachPlayer(player.New(clientID))
	if err != nil {
		return err
	}

	// Offsets correct the client's own object-id counters when it is
	// handed a slot a previous, never-cleaned-up occupant also used.
	var offsets [vanjectOffsetSlots]uint16
	for id, v := range g.Vanjects {
		if v.GetStation() != int32(slot) {
			continue
		}
		idx := int(id>>16) & 63
		if idx >= vanjectOffsetSlots {
			continue
		}
		lower := uint16(id & 0xFFFF)
		if offsets[idx] < lower {
			offsets[idx] = lower
		}
	}

	configured := byte(0)
	if g.IsConfigured() {
		configured = 1
	}

	data := make([]byte, 0, 4+1+4+1+2*vanjectOffsetSlots)
	idBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(idBuf, g.ID)
	data = append(data, idBuf...)
	data = append(data, configured)
	binary.LittleEndian.PutUint32(idBuf, g.BirthTime.Seconds())
	data = append(data, idBuf...)
	data = append(data, slot)
	for _, o := range offsets {
		if o != 0 {
			o++
		}
		data = binary.LittleEndian.AppendUint16(data, o)
	}

	s.sendDirect(clientID, protocol.NewPacket(protocol.ActionAttachToGameResponse, data))

	if s.protocolVersion(clientID) >= 2 {
		zt := make([]byte, 4)
		binary.LittleEndian.PutUint32(zt, uint32(time.Now().Unix()))
		s.sendDirect(clientID, protocol.NewPacket(protocol.ActionZTimeResponse, zt))
	}

	for _, v := range g.Vanjects {
		s.sendDirect(clientID, protocol.NewPacket(protocol.ActionUpdateObject, v.ToVangersBytes()))
	}

	return nil
}
