//go:build unix

package alloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mmap allocates anonymous private pages outside the Go heap, the
// user-space analogue of a kernel page allocator. Requested sizes are
// rounded up to the page size and the full mapping is returned.
//
// The garbage collector does not scan mapped pages: values stored in
// mmap-backed tables must not contain Go pointers.
type Mmap struct{}

// Alloc maps at least size bytes of zeroed memory.
func (Mmap) Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("alloc: invalid allocation size %d", size)
	}
	pg := unix.Getpagesize()
	size = (size + pg - 1) &^ (pg - 1)
	buf, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("alloc: mmap %d bytes: %w", size, err)
	}
	return buf, nil
}

// Free unmaps a buffer returned by Alloc.
func (Mmap) Free(buf []byte) error {
	if buf == nil {
		return nil
	}
	return unix.Munmap(buf)
}
