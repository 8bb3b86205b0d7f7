package probetab

import "errors"

// Sentinel errors returned by table lifecycle and registry operations.
// Key absence on Find and Remove is reported with a false ok result, not
// an error: it is a normal outcome, not an exceptional one.
var (
	// ErrIllegalKey is returned by Insert when the key equals the table's
	// configured empty-slot sentinel. Such a key can never be stored.
	ErrIllegalKey = errors.New("probetab: key equals the illegal-key sentinel")

	// ErrProbesExhausted is returned by Insert when every slot in the probe
	// window is held by other keys. The table may still have free capacity
	// elsewhere; recovery is up to the caller (larger bits, larger
	// MaxTries, or a better-distributed key space).
	ErrProbesExhausted = errors.New("probetab: probe window exhausted")

	// ErrInvalidBits is returned by Init when the table definition's bits
	// value is out of range.
	ErrInvalidBits = errors.New("probetab: bits out of range")

	// ErrAlreadyInitialized is returned by Init on a table that already
	// holds live storage.
	ErrAlreadyInitialized = errors.New("probetab: table already initialized")

	// ErrNotInitialized is returned by Close on a table that was never
	// initialized, failed to initialize, or was already closed.
	ErrNotInitialized = errors.New("probetab: table not initialized")

	// ErrRegistryFull means the process-wide registry has no free slot.
	// The affected table stays fully usable; it is only missing from
	// Report output.
	ErrRegistryFull = errors.New("probetab: table registry is full")

	// ErrAlreadyRegistered means the table is already present in the
	// registry. Diagnostic only.
	ErrAlreadyRegistered = errors.New("probetab: table already registered")
)
