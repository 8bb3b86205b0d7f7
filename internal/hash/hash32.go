// Package hash provides the integer mixing functions used to spread uint32
// table keys before power-of-two index reduction.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Shift32 is an avalanche mix for 32-bit integer keys, derived from the
// classic integer hash catalog (Thomas Wang / Bob Jenkins lineage). Its
// typical input is a thread or process identifier: keys that cluster in a
// small numeric range and need mixing before a mask reduction.
func Shift32(key uint32) uint32 {
	key = ^key + (key << 10)
	key ^= key >> 7
	key += key << 1
	key ^= key >> 2
	key *= 187
	key ^= key >> 11
	return key
}

// Identity returns the key unchanged. Useful when keys are already well
// distributed, or when deterministic slot placement is wanted for
// debugging and collision construction.
func Identity(key uint32) uint32 {
	return key
}

// XXH32 hashes the four key bytes with xxhash and folds the 64-bit result
// onto 32 bits. A heavier mix than Shift32 for key spaces that defeat the
// shift-based avalanche.
func XXH32(key uint32) uint32 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], key)
	sum := xxhash.Sum64(b[:])
	return uint32(sum ^ (sum >> 32))
}
