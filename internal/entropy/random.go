// Package entropy supplies seeds and seeded random sources for generation
// runs. Fresh seeds come from crypto/rand; everything downstream of a seed is
// deterministic.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Stream offsets keep each generation stage on its own sequence, so changing
// how many numbers one stage draws does not shift the others.
const (
	StreamInitial    int64 = 0
	StreamRegions    int64 = 100
	StreamSettlement int64 = 200
)

// Seed returns a fresh non-zero seed from crypto/rand.
func Seed() int64 {
	for {
		s := int64(cryptoUint64() >> 1)
		if s != 0 {
			return s
		}
	}
}

// Resolve returns seed unchanged, or a fresh seed when seed is 0.
func Resolve(seed int64) int64 {
	if seed == 0 {
		return Seed()
	}
	return seed
}

// NewRand returns a math/rand source for one stream of a run.
func NewRand(seed, stream int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed + stream))
}

func cryptoUint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms.
		panic("entropy: crypto/rand unavailable: " + err.Error())
	}
	return binary.LittleEndian.Uint64(buf[:])
}
