package player

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// ErrNameTooShort describes a name shorter than a null terminator plus one
// character. Player.SetAuth reports that case as ErrNameTooShortForAuth;
// nothing in this package returns ErrNameTooShort.
var ErrNameTooShort = errors.New("player: name must be a null-terminated string of length >= 2")

// Auth holds a player's display name and an optional password hash. The
// password is never stored in cleartext and is not a security boundary —
// it exists only so a returning player can claim the same slot identity.
type Auth struct {
	Name []byte // null-terminated
	Pwd  *uint64
}

// NewAuth builds an Auth from raw name/password bytes as sent on the wire.
// An empty name is replaced with "Player-NNNNN" for a random 5-digit N. A
// name missing its trailing NUL gets one appended.
func NewAuth(name, pwd []byte) Auth {
	var n []byte
	switch {
	case len(name) == 0:
		n = []byte(fmt.Sprintf("Player-%05d\x00", rand.Intn(100000)))
	case name[len(name)-1] == 0:
		n = append([]byte(nil), name...)
	default:
		n = append(append([]byte(nil), name...), 0)
	}

	var pwdHash *uint64
	if len(pwd) > 0 {
		h := hashPassword(pwd)
		pwdHash = &h
	}

	return Auth{Name: n, Pwd: pwdHash}
}

func hashPassword(pwd []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(pwd)
	return h.Sum64()
}
