package allocator

import (
	"unsafe"

	osherrors "github.com/heapkit/osheap/internal/errors"
	"github.com/heapkit/osheap/internal/sysmem"
)

// growBreak advances the program break by n bytes and returns the address
// it stood at beforehand, reporting any syscall failure through the
// configured Reporter.
func (h *Heap) growBreak(n uintptr) uintptr {
	old, err := sysmem.Grow(n)
	if err != nil {
		h.config.Reporter.Fatal(osherrors.SyscallFailed("break-grow", err))
	}

	return old
}

// mapAnon requests a fresh anonymous mapping of n bytes, reporting any
// syscall failure through the configured Reporter.
func (h *Heap) mapAnon(n uintptr) []byte {
	region, err := sysmem.MapAnon(int(n))
	if err != nil {
		h.config.Reporter.Fatal(osherrors.SyscallFailed("mmap", err))
	}

	return region
}

// firstArena performs the first-use preallocation described in spec.md §3:
// grow the program break by a full MmapThreshold bytes regardless of the
// request size, install one ALLOC block over it, and split off the tail
// FREE block if size leaves enough leftover.
func (h *Heap) firstArena(size uintptr) *header {
	addr := h.growBreak(h.config.MmapThreshold)

	block := headerAt(addr)
	block.size = h.config.MmapThreshold - headerSize
	block.status = statusAlloc
	block.next = nil

	if align(block.size)-align(size) >= headerSize+align(1) {
		splitBlock(block, size)
	}

	return block
}

// tailArena implements the acquisition engine's "subsequent" arena path:
// extend the last block in place if it is FREE, otherwise grow the break
// by exactly what a fresh block needs and append it.
func (h *Heap) tailArena(tail *header, size uintptr) *header {
	want := align(size)

	if tail.status == statusFree {
		h.growBreak(want - align(tail.size))
		tail.size = want
		tail.status = statusAlloc

		return tail
	}

	addr := h.growBreak(want + headerSize)

	block := headerAt(addr)
	block.size = want
	block.status = statusAlloc
	block.next = nil
	appendAfter(tail, block)

	return block
}

// mapBlock requests a standalone mapping sized to hold size bytes of
// payload plus one header, and installs a MAPPED header over it. The
// returned block is never linked into the registry.
func (h *Heap) mapBlock(size uintptr) *header {
	region := h.mapAnon(align(size + headerSize))

	block := (*header)(unsafe.Pointer(&region[0]))
	block.status = statusMapped
	block.size = align(size)
	block.next = nil

	h.mappedBytes += block.size
	h.mappedBlocks++

	return block
}

// unmapBlock returns a MAPPED block's pages to the kernel.
func (h *Heap) unmapBlock(block *header) {
	size := block.size
	n := align(size + headerSize)
	region := unsafe.Slice((*byte)(unsafe.Pointer(block)), int(n))

	if err := sysmem.Unmap(region); err != nil {
		h.config.Reporter.Fatal(osherrors.SyscallFailed("munmap", err))
	}

	h.mappedBytes -= size
	h.mappedBlocks--
}
