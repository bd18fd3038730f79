//go:build linux
// +build linux

package sysmem

import "golang.org/x/sys/unix"

// Grow advances the program break by delta bytes and returns the break as
// it stood before the advance, mirroring the classical sbrk(2) contract:
// Grow(0) reports the current break without moving it. A failed advance
// (the kernel reports a break short of what was requested) is reported as
// ErrBreakFailed.
func Grow(delta uintptr) (uintptr, error) {
	current, _, errno := unix.Syscall(unix.SYS_BRK, 0, 0, 0)
	if errno != 0 {
		return 0, errno
	}

	if delta == 0 {
		return current, nil
	}

	target := current + delta

	moved, _, errno := unix.Syscall(unix.SYS_BRK, target, 0, 0)
	if errno != 0 || moved < target {
		return 0, ErrBreakFailed
	}

	return current, nil
}
