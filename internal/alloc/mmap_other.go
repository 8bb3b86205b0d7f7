//go:build !unix

package alloc

import "errors"

// Mmap is unavailable on this platform; Alloc always fails.
type Mmap struct{}

func (Mmap) Alloc(size int) ([]byte, error) {
	return nil, errors.New("alloc: mmap is not supported on this platform")
}

func (Mmap) Free([]byte) error { return nil }
