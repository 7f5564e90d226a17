package combat

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// seedSource is replaced in tests.
var seedSource io.Reader = crand.Reader

// NewSeed generates a random battle seed using crypto/rand.
// Never returns 0, which Setup reserves for "pick a seed".
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(seedSource, b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := binary.LittleEndian.Uint64(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
