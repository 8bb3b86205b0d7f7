// Package probetab implements a fixed-capacity, wait-free, linear-probing
// hash table from uint32 keys to arbitrary pointer-free values.
//
// A table is sized once, at initialization, to 1<<bits nominal slots plus
// MaxTries overflow slots; the overflow tail lets every probe sequence run
// linearly to its bound without index wraparound. Slots are claimed with a
// single compare-and-swap on the key field and released with a
// value-before-key ordered store, so insert, remove and find are bounded
// to MaxTries steps with no locks, no blocking and no allocation on the
// data path.
//
// The concurrency contract is deliberately narrow: searches are free for
// all, but each distinct key must be inserted and removed by one logical
// owner at a time. The contract is documented, not enforced; it is what
// makes the single-CAS claim and the plain value accesses sound.
//
// Tables register themselves in a bounded process-wide registry; Report
// renders the live tables with their monotonic operation counters. Backing
// memory comes from an injected allocator: the Go heap by default, or
// anonymous mmap pages for storage outside the heap.
package probetab
