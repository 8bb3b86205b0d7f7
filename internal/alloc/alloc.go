// Package alloc provides the backing-memory allocators for table storage.
//
// The table engine consumes only the Allocator interface; it never branches
// on how the bytes were obtained. Heap serves ordinary processes, Mmap
// serves workloads that want page-granular storage outside the Go heap.
package alloc

import (
	"fmt"
	"unsafe"
)

// CacheLineSize is the alignment guaranteed for every allocation.
const CacheLineSize = 64

// Allocator hands out contiguous, zeroed, cache-line-aligned byte buffers.
// Free releases a buffer previously returned by Alloc on the same
// allocator; passing any other slice is invalid.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte) error
}

// Heap allocates from the Go heap. Buffers are reclaimed by the garbage
// collector once unreferenced; Free is a no-op kept for interface symmetry.
type Heap struct{}

// Alloc returns a zeroed buffer of exactly size bytes, aligned to
// CacheLineSize.
func (Heap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("alloc: invalid allocation size %d", size)
	}
	return alignedBytes(size, CacheLineSize), nil
}

// Free is a no-op for heap buffers.
func (Heap) Free([]byte) error { return nil }

// alignedBytes over-allocates and slices from the first aligned offset.
// The returned slice shares its backing array with the raw allocation,
// which keeps the whole block live for the GC.
func alignedBytes(size, align int) []byte {
	raw := make([]byte, size+align-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (addr + uintptr(align) - 1) &^ (uintptr(align) - 1)
	off := int(aligned - addr)
	return raw[off : off+size : off+size]
}

// IsAligned reports whether p sits on the given power-of-two boundary.
func IsAligned(p unsafe.Pointer, align uintptr) bool {
	return uintptr(p)&(align-1) == 0
}
