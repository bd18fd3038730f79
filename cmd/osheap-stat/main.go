// Command osheap-stat drives a Heap through a synthetic allocation
// workload and reports its final Stats, for eyeballing the placement
// engine's behavior from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	semver "github.com/Masterminds/semver/v3"

	"github.com/heapkit/osheap/internal/allocator"
	"github.com/heapkit/osheap/internal/cli"
)

func main() {
	var (
		count       = flag.Int("count", 64, "number of allocate/free cycles to run")
		size        = flag.Uint64("size", 256, "payload size per allocation, in bytes")
		minVersion  = flag.String("min-version", "", "refuse to run unless this tool's version satisfies the given semver constraint")
		jsonVersion = flag.Bool("json", false, "print --version output as JSON")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		cli.PrintVersion("osheap-stat", *jsonVersion)
		return
	}

	if *minVersion != "" {
		requireVersion(*minVersion)
	}

	h := allocator.NewHeap()
	workload(h, *count, uintptr(*size))

	stats := h.Stats()
	cli.NewLogger(true).Stats("osheap-stat", stats.ArenaBlocks, stats.ArenaBytes,
		stats.FreeBlocks, stats.FreeBytes, stats.MappedBlocks, stats.MappedBytes)
}

// workload allocates count payloads of size bytes, then frees every other
// one, exercising both the placement engine's reuse path and the
// acquisition engine's growth path.
func workload(h *allocator.Heap, count int, size uintptr) {
	ptrs := make([]unsafe.Pointer, 0, count)

	for i := 0; i < count; i++ {
		ptr := h.Allocate(size)
		if ptr == nil {
			cli.ExitWithError("allocation %d of %d bytes failed", i, size)
		}

		ptrs = append(ptrs, ptr)
	}

	for i, ptr := range ptrs {
		if i%2 == 0 {
			h.Free(ptr)
		}
	}
}

// requireVersion validates this tool's own version against a caller-
// supplied semver constraint, exiting non-zero on a mismatch.
func requireVersion(constraint string) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		cli.ExitWithError("invalid --min-version constraint %q: %v", constraint, err)
	}

	v, err := semver.NewVersion(cli.Version)
	if err != nil {
		cli.ExitWithError("tool version %q is not valid semver: %v", cli.Version, err)
	}

	if !c.Check(v) {
		fmt.Fprintf(os.Stderr, "osheap-stat %s does not satisfy constraint %s\n", cli.Version, constraint)
		os.Exit(1)
	}
}
