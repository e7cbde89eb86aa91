package player

import (
	"bytes"
	"errors"
)

const maxNameBytes = 16

var (
	ErrAuthParse  = errors.New("player: name or password is not a null-terminated string")
	ErrNameIsNull = errors.New("player: name is empty")
)

// ExtractAuthData parses a REGISTER_NAME payload: two back-to-back
// null-terminated byte strings, name then password. Password may be empty
// (a single NUL immediately following name's NUL). Both are returned without
// their NUL. Names longer than 16 bytes (not counting the NUL) are truncated
// to 15 bytes.
func ExtractAuthData(data []byte) (name, pwd []byte, err error) {
	nameEnd := bytes.IndexByte(data, 0)
	if nameEnd == -1 {
		return nil, nil, ErrAuthParse
	}
	if nameEnd == 0 {
		return nil, nil, ErrNameIsNull
	}

	name = data[:nameEnd]
	consumed := nameEnd + 1
	if len(data) <= consumed {
		return nil, nil, ErrAuthParse
	}

	rest := data[consumed:]
	pwdEnd := bytes.IndexByte(rest, 0)
	if pwdEnd == -1 {
		return nil, nil, ErrAuthParse
	}
	pwd = rest[:pwdEnd]

	if len(name) > maxNameBytes {
		name = name[:maxNameBytes-1]
	}

	return name, pwd, nil
}
