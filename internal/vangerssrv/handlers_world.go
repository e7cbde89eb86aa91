package vangerssrv

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/vangers-srv/internal/game"
	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
	"github.com/udisondev/vangers-srv/internal/vanject"
)

// handleSetWorld places the caller into a world, creating it on first use,
// and replays the inventory/dropped objects already sitting in it.
func handleSetWorld(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	if len(pkt.Data) < 3 {
		return fmt.Errorf("%w: SET_WORLD needs at least 3 bytes", ErrPayloadTooSmall)
	}
	worldID := pkt.Data[0]
	ySize := int16(binary.LittleEndian.Uint16(pkt.Data[1:3]))

	g, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}
	slot := p.Bind.ID()

	worldStatus := byte(0)
	w, ok := g.Worlds[worldID]
	if ok {
		if w.YSize != ySize {
			return fmt.Errorf("%w: world=%d expected=%d given=%d", ErrWorldSizeMismatch, worldID, w.YSize, ySize)
		}
	} else {
		w = game.NewWorld(worldID, ySize)
		g.Worlds[worldID] = w
		worldStatus = 1
	}

	var inventory [][]byte
	for _, v := range g.Vanjects {
		if v.GetType() == vanject.TypeVanger {
			continue
		}
		if v.GetWorld() != int32(worldID) {
			continue
		}
		if v.IsPlayers() && !v.IsNonGlobal() {
			continue
		}
		inventory = append(inventory, v.ToVangersBytes())
	}

	transitioned, err := g.PlacePlayer(clientID, w)
	if err != nil {
		return err
	}
	if transitioned {
		s.notifyAll(clientID, protocol.NewPacket(protocol.ActionPlayersStatus, []byte{slot, byte(player.StatusGaming)}))
	}

	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersWorld, []byte{slot, worldID}))
	s.notifyPlayer(clientID, protocol.NewPacket(protocol.ActionSetWorldResponse, []byte{worldID, worldStatus}))

	for _, body := range inventory {
		s.notifyPlayer(clientID, protocol.NewPacket(protocol.ActionUpdateObject, body))
	}
	return nil
}

// handleLeaveWorld clears the caller's world membership, destroys its
// private inventory objects, and tells the session the slot left its world.
func handleLeaveWorld(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	return leaveWorld(s, clientID)
}

func leaveWorld(s *Server, clientID player.ClientID) error {
	g, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}
	if !p.IsInWorld() {
		return fmt.Errorf("%w: client_id=%d", ErrWorldEmpty, clientID)
	}
	slot := p.Bind.ID()
	p.WorldID = nil

	for id, v := range g.Vanjects {
		if v.GetStation() != int32(slot) || !v.IsPrivate() {
			continue
		}
		data := make([]byte, 0, 9)
		data = binary.LittleEndian.AppendUint32(data, uint32(id))
		data = append(data, slot)
		data = binary.LittleEndian.AppendUint32(data, uint32(v.Time))
		delete(g.Vanjects, id)
		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionDeleteObject, data))
	}

	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersWorld, []byte{slot, 0}))
	return nil
}
