// Package allocator implements a best-fit heap allocator over a program
// break arena and anonymous mappings, exposing allocate, free, zeroed
// allocate and resize.
package allocator

import "unsafe"

// Heap is a single allocator instance: a registry of arena blocks rooted at
// base, plus the configuration governing thresholds and fatal-error
// reporting. Its zero value is not ready for use; construct with NewHeap.
//
// A Heap has no internal synchronization. Concurrent use from more than one
// goroutine must be serialized by the caller; this is an explicit Non-goal,
// not an oversight (spec.md §5).
type Heap struct {
	config       *Config
	base         *header
	mappedBytes  uintptr
	mappedBlocks int
}

// NewHeap constructs a Heap with the given options applied over the
// defaults (MmapThreshold = 131072, CallocThreshold = 4096).
func NewHeap(opts ...Option) *Heap {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Heap{config: cfg}
}

// DefaultHeap is the package-level instance backing the convenience
// functions Alloc, Free, Calloc and Realloc.
var DefaultHeap = NewHeap()

// Alloc allocates size bytes using DefaultHeap.
func Alloc(size uintptr) unsafe.Pointer { return DefaultHeap.Allocate(size) }

// Free releases a payload pointer previously returned by DefaultHeap.
func Free(ptr unsafe.Pointer) { DefaultHeap.Free(ptr) }

// Calloc allocates nmemb*size zero-filled bytes using DefaultHeap.
func Calloc(nmemb, size uintptr) unsafe.Pointer { return DefaultHeap.AllocateZeroed(nmemb, size) }

// Realloc resizes a payload pointer previously returned by DefaultHeap.
func Realloc(ptr unsafe.Pointer, size uintptr) unsafe.Pointer { return DefaultHeap.Resize(ptr, size) }

// Allocate returns a payload pointer to size bytes, or nil for size == 0.
// Requests below the heap's MmapThreshold are served from the arena
// (reusing a coalesced best-fit block, or growing the break); requests at
// or above it go straight to an anonymous mapping.
func (h *Heap) Allocate(size uintptr) unsafe.Pointer {
	if size == 0 {
		return nil
	}

	block := h.acquire(size, size, h.config.MmapThreshold)
	if block == nil {
		return nil
	}

	return block.payload()
}

// acquire is the shared placement/acquisition path behind Allocate and
// AllocateZeroed. size is the requested payload size used for actual block
// sizing; compare is what gets tested against threshold to choose between
// the arena and mapping primitives, since the two callers compare
// differently (spec.md §4.3): Allocate compares the payload size alone,
// while AllocateZeroed must fold the header into the comparison because
// mapped memory arrives pre-zeroed and only a request that would still fit
// under the threshold once a header is attached belongs in the arena.
func (h *Heap) acquire(size, compare, threshold uintptr) *header {
	if h.base == nil {
		if compare < threshold {
			block := h.firstArena(size)
			h.base = block

			return block
		}

		return h.mapBlock(size)
	}

	if compare < threshold {
		coalesce(h.base)

		if block := findFreeBlock(h.base, size); block != nil {
			return block
		}

		return h.tailArena(findTail(h.base), size)
	}

	return h.mapBlock(size)
}

// Free releases a payload pointer previously returned by Allocate,
// AllocateZeroed or Resize. A nil ptr is a no-op. MAPPED blocks are
// unmapped immediately; arena blocks are only marked FREE. Coalescing is
// deferred to the next placement attempt.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}

	block := headerFromPayload(ptr)

	if block.status == statusMapped {
		h.unmapBlock(block)
		return
	}

	block.status = statusFree
}

// AllocateZeroed returns a zero-filled payload pointer to nmemb*size bytes,
// or nil if either factor is zero or the product overflows. It otherwise
// behaves like Allocate but uses CallocThreshold to choose between the
// arena and mapping paths.
func (h *Heap) AllocateZeroed(nmemb, size uintptr) unsafe.Pointer {
	if nmemb == 0 || size == 0 {
		return nil
	}

	total := nmemb * size
	if total/nmemb != size {
		return nil
	}

	block := h.acquire(total, align(total+headerSize), h.config.CallocThreshold)
	if block == nil {
		return nil
	}

	ptr := block.payload()
	zero(ptr, block.size)

	return ptr
}

// Resize changes the size of the allocation at ptr, preserving its
// contents up to the smaller of the old and new sizes. See spec.md §4.4 for
// the case-by-case contract.
func (h *Heap) Resize(ptr unsafe.Pointer, size uintptr) unsafe.Pointer {
	if ptr == nil {
		return h.Allocate(size)
	}

	if size == 0 {
		h.Free(ptr)
		return nil
	}

	block := headerFromPayload(ptr)

	switch block.status {
	case statusFree:
		return nil
	case statusMapped:
		return h.resizeMapped(block, size)
	}

	switch {
	case align(size) > align(block.size):
		return h.growInPlace(block, size)
	case align(size) < align(block.size):
		if align(block.size)-align(size) >= headerSize {
			splitBlock(block, size)
		}

		return block.payload()
	default:
		return block.payload()
	}
}

// resizeMapped moves a MAPPED block to a freshly allocated block, copying
// min(old size, new size) bytes, then unmaps the original. This departs
// from the reference implementation's over-copy on shrink (spec.md §9).
func (h *Heap) resizeMapped(block *header, size uintptr) unsafe.Pointer {
	newPtr := h.Allocate(size)
	if newPtr == nil {
		return nil
	}

	copySize := block.size
	if size < copySize {
		copySize = size
	}

	copyBytes(newPtr, block.payload(), copySize)
	h.unmapBlock(block)

	return newPtr
}

// growInPlace attempts to satisfy a grow-resize by coalescing block forward
// with its immediate FREE successors. On success it returns the same
// payload pointer without splitting the now-larger block (spec.md §9); on
// failure it acquires a fresh arena block, copies the old contents, and
// marks the old block FREE.
func (h *Heap) growInPlace(block *header, size uintptr) unsafe.Pointer {
	if growCoalesce(block, align(size)) {
		return block.payload()
	}

	newBlock := h.tailArena(findTail(h.base), size)
	copyBytes(newBlock.payload(), block.payload(), block.size)
	block.status = statusFree

	return newBlock.payload()
}
