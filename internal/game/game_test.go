package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/vangers-srv/internal/player"
)

func TestAttachPlayerAssignsSmallestFreeSlot(t *testing.T) {
	g := New(1)

	id1, err := g.AttachPlayer(player.New(1))
	require.NoError(t, err)
	assert.EqualValues(t, 1, id1)

	id2, err := g.AttachPlayer(player.New(2))
	require.NoError(t, err)
	assert.EqualValues(t, 2, id2)

	g.Players[0].SetBind(0) // free slot 1
	id3, err := g.AttachPlayer(player.New(3))
	require.NoError(t, err)
	assert.EqualValues(t, 1, id3, "freed slot 1 is reused before allocating 3")
}

func TestAttachPlayerFullGameFails(t *testing.T) {
	g := New(1)
	for i := MinPlayerID; i <= MaxPlayerID; i++ {
		_, err := g.AttachPlayer(player.New(player.ClientID(i)))
		require.NoError(t, err)
	}
	_, err := g.AttachPlayer(player.New(player.ClientID(99)))
	assert.ErrorIs(t, err, ErrGameFull)
}

func TestPlacePlayerTransitionsToGamingOnce(t *testing.T) {
	g := New(1)
	_, err := g.AttachPlayer(player.New(1))
	require.NoError(t, err)

	world := NewWorld(5, 100)
	g.Worlds[world.ID] = world

	changed, err := g.PlacePlayer(1, world)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = g.PlacePlayer(1, world)
	require.NoError(t, err)
	assert.False(t, changed, "already GAMING, no further transition")
}

func TestSetConfigRejectsDoubleConfigure(t *testing.T) {
	g := New(1)
	data := i32le(1, int32(ModeHuntage), 3, 4, 5, 6)
	require.NoError(t, g.SetConfig(data, DefaultQuirks()))
	assert.ErrorIs(t, g.SetConfig(data, DefaultQuirks()), ErrAlreadyConfigured)
}

func TestRegistryCreateAndLookup(t *testing.T) {
	r := NewRegistry()
	id := r.NextID()
	g, err := r.Create(id)
	require.NoError(t, err)

	_, err = r.Create(id)
	assert.ErrorIs(t, err, ErrGameExists)

	_, err = g.AttachPlayer(player.New(42))
	require.NoError(t, err)

	assert.Same(t, g, r.ByID(id))
	assert.Same(t, g, r.ByClientID(42))
	assert.Nil(t, r.ByClientID(999))

	r.Remove(id)
	assert.Nil(t, r.ByID(id))
}
