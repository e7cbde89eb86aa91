package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/udisondev/vangers-srv/internal/player"
	"github.com/udisondev/vangers-srv/internal/vanject"
)

// MinPlayerID and MaxPlayerID bound the slot range a Game hands out via
// AttachPlayer. The source server used 30 as the upper bound in one place
// ("or 31 (?)", per its own comment) and 31 in the bit-packed object-id
// format elsewhere; 31 is followed here so the two stay consistent.
const (
	MinPlayerID uint8 = 1
	MaxPlayerID uint8 = 31
)

var (
	ErrGameFull          = errors.New("game: no free player slots")
	ErrNotConfigured     = errors.New("game: not configured")
	ErrAlreadyConfigured = errors.New("game: already configured")
	ErrPlayerNotFound    = errors.New("game: player not found for client")
)

// Game is one play session: its players, worlds, ruleset and the flat
// table of objects (vanjects) shared across the whole session.
type Game struct {
	ID        uint32
	Name      []byte
	Players   []*player.Player
	Worlds    map[uint8]*World
	BirthTime *Uptime
	Config    *Config
	Vanjects  map[int32]*vanject.Vanject
}

func New(id uint32) *Game {
	return &Game{
		ID:       id,
		Worlds:   make(map[uint8]*World),
		BirthTime: NewUptime(),
		Vanjects: make(map[int32]*vanject.Vanject),
	}
}

func (g *Game) IsConfigured() bool { return g.Config != nil }

func (g *Game) Mode() Mode {
	if g.Config == nil {
		return ModeUnconfigured
	}
	return g.Config.Mode
}

// GetPlayer returns the player bound to clientID, if any.
func (g *Game) GetPlayer(clientID player.ClientID) *player.Player {
	for _, p := range g.Players {
		if p.ClientID == clientID {
			return p
		}
	}
	return nil
}

// uniqPlayerID returns the smallest free slot in [MinPlayerID, MaxPlayerID],
// or 0 if the game is full.
func (g *Game) uniqPlayerID() uint8 {
	taken := make([]uint8, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Bind != nil {
			taken = append(taken, p.Bind.ID())
		}
	}
	sort.Slice(taken, func(i, j int) bool { return taken[i] < taken[j] })

	idx := 0
	for id := MinPlayerID; id <= MaxPlayerID; id++ {
		if idx < len(taken) && taken[idx] == id {
			idx++
			continue
		}
		return id
	}
	return 0
}

// AttachPlayer assigns p the smallest free slot and adds it to the game.
// Returns ErrGameFull if no slot is available.
func (g *Game) AttachPlayer(p *player.Player) (uint8, error) {
	id := g.uniqPlayerID()
	if id == 0 {
		return 0, ErrGameFull
	}
	if err := p.SetBind(id); err != nil {
		return 0, err
	}
	g.Players = append(g.Players, p)
	return id, nil
}

// PlacePlayer points the player for clientID at world and reports whether
// this transitioned their status to GAMING.
func (g *Game) PlacePlayer(clientID player.ClientID, world *World) (bool, error) {
	p := g.GetPlayer(clientID)
	if p == nil {
		return false, fmt.Errorf("%w: client_id=%d", ErrPlayerNotFound, clientID)
	}
	id := world.ID
	p.WorldID = &id
	if p.Status != player.StatusGaming {
		p.Status = player.StatusGaming
		return true, nil
	}
	return false, nil
}

// RemovePlayer drops the player bound to clientID from the game, if any.
func (g *Game) RemovePlayer(clientID player.ClientID) {
	for i, p := range g.Players {
		if p.ClientID == clientID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			return
		}
	}
}

// SetConfig parses slice as a Config and stores it, failing if the game is
// already configured.
func (g *Game) SetConfig(slice []byte, quirks Quirks) error {
	if g.IsConfigured() {
		return ErrAlreadyConfigured
	}
	cfg, err := ParseConfig(slice, quirks)
	if err != nil {
		return err
	}
	g.Config = cfg
	return nil
}
