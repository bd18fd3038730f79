package allocator

// Stats summarizes the current state of a Heap, computed by a read-only
// walk of the registry plus the mapped-block counters maintained by the
// acquisition engine. Not part of spec.md's core; see SPEC_FULL.md §10.
type Stats struct {
	ArenaBlocks  int
	ArenaBytes   uintptr
	FreeBlocks   int
	FreeBytes    uintptr
	MappedBlocks int
	MappedBytes  uintptr
}

// Stats reports a snapshot of the heap's registry and mapped-block state.
func (h *Heap) Stats() Stats {
	s := Stats{
		MappedBlocks: h.mappedBlocks,
		MappedBytes:  h.mappedBytes,
	}

	for cur := h.base; cur != nil; cur = cur.next {
		s.ArenaBlocks++
		s.ArenaBytes += align(cur.size)

		if cur.status == statusFree {
			s.FreeBlocks++
			s.FreeBytes += align(cur.size)
		}
	}

	return s
}
