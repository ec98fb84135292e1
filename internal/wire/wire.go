package wire

import (
	"bytes"
	"errors"
)

const (
	version byte = 1

	// flagNull marks an entry that is present but carries no value.
	// Presence, not payload, is what Get reports; the flag is what lets a
	// cached "nothing here" survive both tiers intact.
	flagNull byte = 1 << 0
)

var (
	ErrCorrupt = errors.New("hybridcache: corrupt entry")
	magic4     = [...]byte{'H', 'Y', 'B', 'C'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Entry: magic(4) | ver(1) | flags(1) | payload(rest)
func Encode(null bool, payload []byte) []byte {
	var flags byte
	if null {
		flags |= flagNull
	}
	out := make([]byte, 0, 4+1+1+len(payload))
	out = append(out, magic4[:]...)
	out = append(out, version, flags)
	out = append(out, payload...)
	return out
}

func Decode(b []byte) (null bool, payload []byte, err error) {
	const hdr = 4 + 1 + 1
	if len(b) < hdr || !hasMagic(b) || b[4] != version {
		return false, nil, ErrCorrupt
	}
	flags := b[5]
	null = flags&flagNull != 0
	if null && len(b) > hdr {
		// null entries must not carry a payload
		return false, nil, ErrCorrupt
	}
	return null, b[hdr:], nil
}
