// Command osheap-watch watches a control directory for drop-in trigger
// files and, on each one, runs a small allocation workload and prints the
// resulting Heap.Stats, a signal-free alternative to wiring up a SIGHUP
// handler for operators who want an on-demand stats dump.
package main

import (
	"flag"

	"github.com/fsnotify/fsnotify"

	"github.com/heapkit/osheap/internal/allocator"
	"github.com/heapkit/osheap/internal/cli"
)

func main() {
	dir := flag.String("dir", ".", "control directory to watch for trigger files")
	verbose := flag.Bool("verbose", true, "log each trigger and watcher event")
	flag.Parse()

	logger := cli.NewLogger(*verbose)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		cli.ExitWithError("creating watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(*dir); err != nil {
		cli.ExitWithError("watching %s: %v", *dir, err)
	}

	h := allocator.NewHeap()
	logger.Info("osheap-watch: watching %s, drop a file in it to dump stats", *dir)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}

			if ev.Op&fsnotify.Create == 0 {
				continue
			}

			logger.Info("trigger: %s", ev.Name)
			dumpStats(h, ev.Name, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			logger.Error("watcher error: %v", err)
		}
	}
}

// dumpStats runs a small allocation/free cycle on h, triggered by the
// creation of path, and logs the resulting stats.
func dumpStats(h *allocator.Heap, path string, logger *cli.Logger) {
	ptr := h.Allocate(128)
	h.Free(ptr)

	stats := h.Stats()
	logger.Stats(path, stats.ArenaBlocks, stats.ArenaBytes, stats.FreeBlocks,
		stats.FreeBytes, stats.MappedBlocks, stats.MappedBytes)
}
