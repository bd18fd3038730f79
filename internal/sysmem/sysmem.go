// Package sysmem exposes the two virtual-memory primitives the allocator
// builds on: a program-break extension call and an anonymous mapping call.
package sysmem

import "errors"

// ErrBreakFailed is returned when the kernel refuses to advance the program
// break to the requested address.
var ErrBreakFailed = errors.New("sysmem: program break advance failed")
