package passfilter

import (
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hash selects the seeded hash family used to derive bit positions.
//
// Both families feed the seed directly into the hash input, so each seed in
// 0..numHashes-1 yields a statistically independent stream of positions.
type Hash uint8

const (
	// XXH3 is the default family: seeded xxh3 over the item string.
	XXH3 Hash = iota

	// Murmur3 uses 32-bit murmur3 with the seed as the murmur seed. It is
	// interoperable with filters built on mmh3-style hashing.
	Murmur3
)

// valid reports whether h names a known hash family.
func (h Hash) valid() bool {
	return h == XXH3 || h == Murmur3
}

// sum computes the hash of (item, seed) for the selected family.
func (h Hash) sum(item string, seed uint32) uint64 {
	if h == Murmur3 {
		return uint64(murmur3.Sum32WithSeed([]byte(item), seed))
	}
	// xxh3 hashes the string directly, no []byte conversion needed
	return xxh3.HashStringSeed(item, uint64(seed))
}

// position reduces the hash of (item, seed) to a bit position in [0, size).
func (h Hash) position(item string, seed uint32, size uint64) uint64 {
	return h.sum(item, seed) % size
}
