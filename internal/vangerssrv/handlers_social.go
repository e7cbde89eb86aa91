package vangerssrv

import (
	"encoding/binary"
	"fmt"

	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

// handleDirectSending relays a text message from the caller to every
// session peer whose slot bit is set in the sender-supplied mask.
func handleDirectSending(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	if len(pkt.Data) < 4+1+1 {
		return fmt.Errorf("%w: DIRECT_SENDING needs at least 6 bytes", ErrPayloadTooSmall)
	}
	mask := binary.LittleEndian.Uint32(pkt.Data[0:4])

	g := s.games.ByClientID(clientID)
	if g == nil {
		return fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}

	var senderSlot byte
	var recipients []player.ClientID
	for _, p := range g.Players {
		if !p.IsBound() {
			continue
		}
		if p.ClientID == clientID {
			senderSlot = p.Bind.ID()
			continue
		}
		if uint32(p.Bind.Mask())&mask != 0 {
			recipients = append(recipients, p.ClientID)
		}
	}

	msg, ok := firstCString(pkt.Data[4:])
	if !ok {
		return ErrPayloadTooSmall
	}
	if senderSlot == 0 {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}

	data := append([]byte{senderSlot}, msg...)
	answer := protocol.NewPacket(protocol.ActionDirectReceiving, data)
	for _, id := range recipients {
		s.sendDirect(id, answer)
	}
	return nil
}

// handleCloseSocket runs world-exit cleanup for a socket going away,
// announces a FINISHED transition if the player had reached GAMING, drops
// the player from its session, and frees the session itself if that
// leaves it empty.
func (s *Server) handleCloseSocket(clientID player.ClientID) error {
	_ = leaveWorld(s, clientID)

	g := s.games.ByClientID(clientID)
	if g == nil {
		return fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}
	p := g.GetPlayer(clientID)
	if p == nil || !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}
	slot := p.Bind.ID()

	p.WorldID = nil
	if p.Status == player.StatusGaming {
		p.Status = player.StatusFinished
		s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersStatus, []byte{slot, byte(player.StatusFinished)}))
	}

	g.RemovePlayer(clientID)
	if len(g.Players) == 0 {
		s.games.Remove(g.ID)
	}
	return nil
}

func handleCloseSocketAction(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	return s.handleCloseSocket(clientID)
}
