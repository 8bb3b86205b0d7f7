package probetab

import (
	"fmt"
	"log"
	"sync/atomic"
	"unsafe"

	"github.com/probetab/probetab/internal/alloc"
)

// maxBits caps a single table at 2^28 nominal slots.
const maxBits = 28

// slot is one storage cell. key is the synchronization field: it is
// claimed with a compare-and-swap, released with an atomic store, and
// always read atomically by probing operations. value is written only by
// the key's owner while the slot is claimed.
type slot[V any] struct {
	key   uint32
	value V
}

// Table is a fixed-capacity wait-free hash table from uint32 keys to V.
//
// Concurrency contract: any number of goroutines may operate on the table
// at once as long as each distinct key is inserted and removed by a single
// logical owner at a time. Find is always permitted from any goroutine.
// The single-owner rule is a caller obligation, not something the table
// enforces; violating it leaves the slot structure intact but makes the
// affected key's value reads meaningless.
//
// Insert, Remove and Find complete in at most MaxTries probe steps, win or
// lose. They never block, never allocate, and never resize the table. A
// Find racing a Remove of the same key may transiently observe the
// configured illegal value; it can never observe another key's value.
//
// The backing store is untyped memory invisible to the garbage collector,
// so V must not contain Go pointers. This holds for both allocators.
type Table[V any] struct {
	name string
	bits uint

	hashFn       HashFunc
	maxTries     int
	illegalKey   uint32
	illegalValue V
	allocator    alloc.Allocator
	logf         Logger

	size    int    // nominal capacity, 1<<bits
	mask    uint32 // size-1, exact modulo for power-of-two size
	memSize int    // backing buffer length in bytes

	buf   []byte    // backing buffer; nil until Init succeeds
	slots []slot[V] // buf reinterpreted; len == size+maxTries

	stats Stats
}

// Define declares a table without allocating storage. The table must be
// initialized with Init before any operation. Unset options default to the
// Hash32Shift mixer, 4 probe tries, a zero illegal key and value, the heap
// allocator and stdlib logging.
func Define[V any](name string, bits uint, opts ...Option[V]) *Table[V] {
	cfg := defaultConfig[V]()
	for _, opt := range opts {
		opt(cfg)
	}
	t := &Table[V]{
		name:         name,
		bits:         bits,
		hashFn:       cfg.hash,
		maxTries:     cfg.maxTries,
		illegalKey:   cfg.illegalKey,
		illegalValue: cfg.illegalValue,
		allocator:    cfg.allocator,
		logf:         cfg.logf,
	}
	if t.hashFn == nil {
		t.hashFn = Hash32Shift
	}
	if t.logf == nil {
		t.logf = log.Printf
	}
	return t
}

// New defines and initializes a table in one call.
func New[V any](name string, bits uint, opts ...Option[V]) (*Table[V], error) {
	t := Define[V](name, bits, opts...)
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}

// Init allocates the backing slot array, fills every slot with the
// illegal key and value, and registers the table for reporting.
//
// The array holds 1<<bits + MaxTries slots: the extra tail lets every
// probe sequence run linearly without index wraparound. On allocation
// failure the table is left unregistered and unusable; the error is also
// logged. Registry overflow and duplicate registration are logged but do
// not fail Init: the table works, it is only missing from Report.
func (t *Table[V]) Init() error {
	if t.bits == 0 || t.bits > maxBits {
		t.logf("probetab: table %s: invalid bits %d", t.name, t.bits)
		return ErrInvalidBits
	}
	if t.buf != nil {
		return ErrAlreadyInitialized
	}

	t.size = 1 << t.bits
	t.mask = uint32(t.size - 1)
	slots := t.size + t.maxTries
	t.memSize = slots * int(unsafe.Sizeof(slot[V]{}))

	buf, err := t.allocator.Alloc(t.memSize)
	if err != nil {
		t.logf("probetab: table %s: failed to allocate %d bytes: %v",
			t.name, t.memSize, err)
		return fmt.Errorf("init table %s: %w", t.name, err)
	}
	t.buf = buf
	t.slots = unsafe.Slice((*slot[V])(unsafe.Pointer(&buf[0])), slots)
	for i := range t.slots {
		t.slots[i].key = t.illegalKey
		t.slots[i].value = t.illegalValue
	}

	if err := register(t); err != nil {
		t.logf("probetab: table %s: %v", t.name, err)
	}
	return nil
}

// Close deregisters the table and releases its backing storage. The
// caller must quiesce all operations first; Close performs no
// synchronization against in-flight calls, and any operation after Close
// panics.
func (t *Table[V]) Close() error {
	if t.buf == nil {
		t.logf("probetab: table %s: close of uninitialized table", t.name)
		return ErrNotInitialized
	}
	deregister(t)
	buf := t.buf
	t.buf = nil
	t.slots = nil
	return t.allocator.Free(buf)
}

// Insert stores value under key, claiming the first free slot in the
// key's probe window with a compare-and-swap. Re-inserting a key the
// caller already owns overwrites its value in place. Returns
// ErrIllegalKey for the sentinel key and ErrProbesExhausted when the
// window holds MaxTries foreign keys.
func (t *Table[V]) Insert(key uint32, value V) error {
	if key == t.illegalKey {
		return ErrIllegalKey
	}
	t.stats.insert.Add(1)
	idx := int(t.hashFn(key) & t.mask)
	for i := idx; i < idx+t.maxTries; i++ {
		s := &t.slots[i]
		switch atomic.LoadUint32(&s.key) {
		case t.illegalKey:
			if atomic.CompareAndSwapUint32(&s.key, t.illegalKey, key) {
				// Slot claimed. The plain value store is safe: only the
				// owner writes this slot while the key is published.
				s.value = value
				return nil
			}
			// Lost the slot to a concurrent claimant.
			t.stats.collision.Add(1)
		case key:
			// Re-insert by the owner: update in place.
			s.value = value
			t.stats.overwritten.Add(1)
			return nil
		default:
			t.stats.collision.Add(1)
		}
	}
	t.stats.insertErr.Add(1)
	return ErrProbesExhausted
}

// Remove deletes key and returns the value it held. The caller must be
// the key's sole owner. The value is cleared to the illegal value before
// the key is released; the release-ordered key store guarantees no later
// claimant of the slot can be paired with the removed value.
func (t *Table[V]) Remove(key uint32) (V, bool) {
	t.stats.remove.Add(1)
	idx := int(t.hashFn(key) & t.mask)
	for i := idx; i < idx+t.maxTries; i++ {
		s := &t.slots[i]
		if atomic.LoadUint32(&s.key) != key {
			continue
		}
		prev := s.value
		s.value = t.illegalValue
		atomic.StoreUint32(&s.key, t.illegalKey)
		return prev, true
	}
	t.stats.removeErr.Add(1)
	var zero V
	return zero, false
}

// Find returns the value stored under key. Reads are best-effort with
// respect to concurrent owners of other keys: a concurrent Remove of this
// key may yield the illegal value, and an insert that has not been
// published to this goroutine may be missed. Establishing happens-before
// across goroutines is the caller's business.
func (t *Table[V]) Find(key uint32) (V, bool) {
	t.stats.search.Add(1)
	idx := int(t.hashFn(key) & t.mask)
	for i := idx; i < idx+t.maxTries; i++ {
		s := &t.slots[i]
		if atomic.LoadUint32(&s.key) == key {
			v := s.value
			t.stats.searchOK.Add(1)
			return v, true
		}
	}
	t.stats.searchErr.Add(1)
	var zero V
	return zero, false
}

// Name returns the table's registry name.
func (t *Table[V]) Name() string { return t.name }

// Size returns the nominal capacity, 1<<bits.
func (t *Table[V]) Size() int { return t.size }

// MemorySize returns the backing buffer size in bytes.
func (t *Table[V]) MemorySize() int { return t.memSize }

// MaxTries returns the probe bound, the hard limit on per-operation steps.
func (t *Table[V]) MaxTries() int { return t.maxTries }

// Stats returns a point-in-time copy of the table's counters.
func (t *Table[V]) Stats() StatsSnapshot { return t.stats.Snapshot() }
