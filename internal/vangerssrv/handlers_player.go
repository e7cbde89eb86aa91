package vangerssrv

import (
	"fmt"

	"github.com/udisondev/vangers-srv/internal/game"
	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

func gameAndPlayer(s *Server, clientID player.ClientID) (*game.Game, *player.Player, error) {
	g := s.games.ByClientID(clientID)
	if g == nil {
		return nil, nil, fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}
	p := g.GetPlayer(clientID)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: client_id=%d", game.ErrPlayerNotFound, clientID)
	}
	return g, p, nil
}

// handleRegisterName records the caller's display name/password and tells
// the rest of the session who just claimed that slot.
func handleRegisterName(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	_, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}

	name, pwd, err := player.ExtractAuthData(pkt.Data)
	if err != nil {
		return err
	}
	if err := p.SetAuth(append(append([]byte(nil), name...), 0), pwd); err != nil {
		return err
	}

	data := append([]byte{p.Bind.ID()}, p.Auth.Name...)
	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersName, data))
	return nil
}

// handleSetPlayerData stores the caller's reported stats and fans the raw
// payload, prefixed with its slot, out to the rest of the session.
func handleSetPlayerData(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	_, p, err := gameAndPlayer(s, clientID)
	if err != nil {
		return err
	}
	if err := p.SetBody(pkt.Data); err != nil {
		return err
	}
	if !p.IsBound() {
		return fmt.Errorf("%w: client_id=%d", ErrPlayerNotBound, clientID)
	}

	data := append([]byte{p.Bind.ID()}, pkt.Data...)
	s.notifyGame(clientID, protocol.NewPacket(protocol.ActionPlayersData, data))
	return nil
}

// handleTotalPlayersDataQuery answers with every bound, body-reporting
// player's slot, status, world, position, name and stats blob.
func handleTotalPlayersDataQuery(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	g := s.games.ByClientID(clientID)
	if g == nil {
		return fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}

	data := []byte{0}
	count := byte(0)
	for _, p := range g.Players {
		if !p.IsBound() || p.Body == nil {
			continue
		}

		world := byte(0)
		if p.WorldID != nil {
			world = *p.WorldID
		}

		name := []byte("[UNDEFINED]\x00")
		if p.Auth != nil {
			name = p.Auth.Name
		}

		row := []byte{p.Bind.ID(), byte(p.Status), world}
		row = append(row, p.Pos.ToVangersBytes()...)
		row = append(row, name...)
		row = append(row, p.Body.ToVangersBytes()...)
		data = append(data, row...)
		count++
	}
	data[0] = count

	s.sendDirect(clientID, protocol.NewPacket(protocol.ActionTotalListOfPlayersData, data))
	return nil
}
