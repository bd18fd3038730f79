//go:build linux || darwin
// +build linux darwin

package sysmem

import "golang.org/x/sys/unix"

// MapAnon returns a fresh, page-aligned, zero-filled region of n bytes,
// private to the caller.
func MapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// Unmap releases a region previously returned by MapAnon.
func Unmap(region []byte) error {
	return unix.Munmap(region)
}
