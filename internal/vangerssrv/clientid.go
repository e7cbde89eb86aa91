package vangerssrv

import (
	"encoding/binary"

	"github.com/google/uuid"

	"github.com/udisondev/vangers-srv/internal/player"
)

// newClientID mints a random 64-bit id for a freshly authenticated
// connection (§3: "random 64-bit client_id"). A UUID is the entropy
// source rather than math/rand so ids stay collision-free across process
// restarts and are easy to tell apart in logs.
func newClientID() player.ClientID {
	id := uuid.New()
	return player.ClientID(binary.LittleEndian.Uint64(id[:8]))
}
