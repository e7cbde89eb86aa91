package vangerssrv

import (
	"bytes"
	"fmt"

	"github.com/udisondev/vangers-srv/internal/game"
	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/protocol"
)

var (
	ErrNameParse = fmt.Errorf("vangerssrv: game name is not a null-terminated string")
	ErrNameEmpty = fmt.Errorf("vangerssrv: game name is empty")
)

// firstCString returns the leading null-terminated run of data, NUL
// included, or false if data has no NUL byte.
func firstCString(data []byte) ([]byte, bool) {
	i := bytes.IndexByte(data, 0)
	if i == -1 {
		return nil, false
	}
	return data[:i+1], true
}

// handleSetGameData configures a not-yet-configured game: a name followed
// by a ruleset tail whose shape depends on the game mode it declares.
func handleSetGameData(s *Server, clientID player.ClientID, pkt protocol.Packet) error {
	g := s.games.ByClientID(clientID)
	if g == nil {
		return fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}
	if g.IsConfigured() {
		return fmt.Errorf("%w: game id=%d", game.ErrAlreadyConfigured, g.ID)
	}

	name, ok := firstCString(pkt.Data)
	if !ok {
		return ErrNameParse
	}
	if len(name) == 1 {
		return ErrNameEmpty
	}

	if err := g.SetConfig(pkt.Data[len(name):], s.quirks); err != nil {
		return err
	}
	g.Name = name
	return nil
}

// handleGetGameData answers with a configured game's name and ruleset.
func handleGetGameData(s *Server, clientID player.ClientID, _ protocol.Packet) error {
	g := s.games.ByClientID(clientID)
	if g == nil {
		return fmt.Errorf("%w: client_id=%d", ErrNoSession, clientID)
	}
	if !g.IsConfigured() {
		return fmt.Errorf("%w: game id=%d", game.ErrNotConfigured, g.ID)
	}

	data := append(append([]byte(nil), g.Name...), g.Config.ToVangersBytes()...)
	s.sendDirect(clientID, protocol.NewPacket(protocol.ActionGameDataResponse, data))
	return nil
}
