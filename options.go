package probetab

import "github.com/probetab/probetab/internal/alloc"

// Logger is the diagnostic sink for non-fatal conditions such as
// allocation failure and registry overflow. It is never called on the
// insert/remove/find path.
type Logger func(format string, args ...any)

// defaultMaxTries is the probe bound used when none is configured. Four
// tries keeps worst-case latency tiny and suits well-mixed keys.
const defaultMaxTries = 4

// config holds the per-table construction parameters.
type config[V any] struct {
	hash         HashFunc
	maxTries     int
	illegalKey   uint32
	illegalValue V
	allocator    alloc.Allocator
	logf         Logger
}

// Option configures a table definition.
type Option[V any] func(*config[V])

func defaultConfig[V any]() *config[V] {
	return &config[V]{
		hash:      Hash32Shift,
		maxTries:  defaultMaxTries,
		allocator: alloc.Heap{},
	}
}

// WithHashFunc selects the key mixer for this table. See Hash32Shift,
// Identity and XXHash.
func WithHashFunc[V any](fn HashFunc) Option[V] {
	return func(c *config[V]) {
		if fn != nil {
			c.hash = fn
		}
	}
}

// WithMaxTries sets the probe bound: the maximum number of slots any
// operation examines, and therefore the worst-case cost of every call.
// Values below 1 keep the default.
func WithMaxTries[V any](n int) Option[V] {
	return func(c *config[V]) {
		if n >= 1 {
			c.maxTries = n
		}
	}
}

// WithIllegalKey reserves key as the empty-slot sentinel instead of 0.
// A real key must never equal the sentinel; Insert rejects it.
func WithIllegalKey[V any](key uint32) Option[V] {
	return func(c *config[V]) {
		c.illegalKey = key
	}
}

// WithIllegalValue sets the value written into a slot when it is vacated.
// Defaults to the zero V.
func WithIllegalValue[V any](v V) Option[V] {
	return func(c *config[V]) {
		c.illegalValue = v
	}
}

// WithAllocator selects the backing-memory allocator, e.g. alloc.Mmap{}
// for page-granular storage outside the Go heap. Defaults to alloc.Heap{}.
func WithAllocator[V any](a alloc.Allocator) Option[V] {
	return func(c *config[V]) {
		if a != nil {
			c.allocator = a
		}
	}
}

// WithLogger replaces the stdlib diagnostic logger.
func WithLogger[V any](logf Logger) Option[V] {
	return func(c *config[V]) {
		if logf != nil {
			c.logf = logf
		}
	}
}
