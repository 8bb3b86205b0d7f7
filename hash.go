package probetab

import "github.com/probetab/probetab/internal/hash"

// HashFunc maps a raw key to a well-distributed 32-bit hash. The hash is
// reduced to a slot index with a power-of-two mask, so low-bit quality
// matters most. A HashFunc must be pure: same key, same hash, no state.
type HashFunc func(key uint32) uint32

// Hash32Shift is the default key mixer: an integer avalanche of shifts,
// adds and a multiply. Built for keys that cluster in a small numeric
// range, such as thread and process identifiers.
var Hash32Shift HashFunc = hash.Shift32

// Identity uses the key itself as the hash. Pick it when keys are already
// well distributed, or when deterministic slot placement is wanted (tests
// construct guaranteed collisions this way).
var Identity HashFunc = hash.Identity

// XXHash mixes the key through xxhash. Heavier than Hash32Shift; useful
// when the key space is adversarial for shift-based mixing.
var XXHash HashFunc = hash.XXH32
