package allocator

import osherrors "github.com/heapkit/osheap/internal/errors"

// MmapThreshold is the default size at or above which allocate requests go
// to the mapping primitive instead of the arena.
const MmapThreshold uintptr = 131072

// CallocThreshold is the default threshold for AllocateZeroed: a request
// whose aligned total size plus one header is at or above it goes to the
// mapping primitive (smaller than MmapThreshold because mapped memory
// arrives zero-filled from the kernel).
const CallocThreshold uintptr = 4096

// Config configures a Heap.
type Config struct {
	MmapThreshold   uintptr
	CallocThreshold uintptr
	Reporter        osherrors.Reporter
}

// Option mutates a Config.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		MmapThreshold:   MmapThreshold,
		CallocThreshold: CallocThreshold,
		Reporter:        osherrors.DefaultReporter{},
	}
}

// WithMmapThreshold overrides the arena/mapping split point for Allocate.
func WithMmapThreshold(n uintptr) Option {
	return func(c *Config) { c.MmapThreshold = n }
}

// WithCallocThreshold overrides the arena/mapping split point for
// AllocateZeroed.
func WithCallocThreshold(n uintptr) Option {
	return func(c *Config) { c.CallocThreshold = n }
}

// WithReporter overrides the fatal-error collaborator, primarily so tests
// can observe a syscall failure instead of letting it abort the process.
func WithReporter(r osherrors.Reporter) Option {
	return func(c *Config) { c.Reporter = r }
}
