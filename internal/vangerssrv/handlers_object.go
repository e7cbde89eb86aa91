package vangerssrv

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
	"github.com/udisondev/vangers-srv/internal/vanject"
)

// handleCreateObject introduces a new object into the caller's session. A
// VANGER object is special-cased: it is also the caller's own avatar, so
// its position and body feed back into the Player record and an extra
// PLAYERS_POSITION broadcast follows.
func handleCreateObject(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	v, err := vanject.CreateFromSlice(pkt.Data)
	if err != nil {
		return err
	}

	g, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}

	if _, exists := g.Vanjects[v.ID]; exists {
		slog.Debug("object already exists", "id", v.ID)
		return nil
	}

	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}
	v.BindToPlayer(p.Bind.ID())

	if v.GetType() == vanject.TypeVanger {
		p.Pos = v.Pos
		if err := p.SetBody(v.Body); err != nil {
			slog.Warn("vanger create: set body failed", "client_id", clientID, "error", err)
		}

		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionUpdateObject, v.ToVangersBytes()))

		posData := append([]byte{v.PlayerBindID}, v.Pos.ToVangersBytes()...)
		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersPosition, posData))
	} else {
		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionUpdateObject, v.ToVangersBytes()))
	}

	g.Vanjects[v.ID] = v
	return nil
}

// handleUpdateObject applies a position/time/body refresh to an object the
// caller already created.
func handleUpdateObject(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	if len(pkt.Data) < 4 {
		return fmt.Errorf("%w: UPDATE_OBJECT needs at least 4 bytes", ErrPayloadTooSmall)
	}
	id := int32(binary.LittleEndian.Uint32(pkt.Data[0:4]))

	g, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}

	v, ok := g.Vanjects[id]
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrObjectNotFound, id)
	}
	if err := v.UpdateFromSlice(pkt.Data); err != nil {
		return err
	}
	v.BindToPlayer(p.Bind.ID())

	if v.GetType() == vanject.TypeVanger {
		posData := append([]byte{v.PlayerBindID}, v.Pos.ToVangersBytes()...)
		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersPosition, posData))
	}
	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionUpdateObject, v.ToVangersBytes()))
	return nil
}

// handleDeleteObject removes an object from the session and tells every
// peer it is gone.
func handleDeleteObject(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	if len(pkt.Data) < 4 {
		return fmt.Errorf("%w: DELETE_OBJECT needs at least 4 bytes", ErrPayloadTooSmall)
	}
	id := int32(binary.LittleEndian.Uint32(pkt.Data[0:4]))

	g, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}

	data := make([]byte, 0, len(pkt.Data)+1)
	data = append(data, pkt.Data[0:4]...)
	data = append(data, p.Bind.ID())
	data = append(data, pkt.Data[4:]...)

	if _, ok := g.Vanjects[id]; !ok {
		slog.Debug("delete object: not found", "id", id)
	} else {
		delete(g.Vanjects, id)
	}

	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionDeleteObject, data))
	return nil
}
