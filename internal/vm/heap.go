package vm

import "sort"

// heapRegion is a bump-style allocator with free-tracking: addresses
// monotonically increase and freed ranges are never reused (spec.md §3).
type heapRegion struct {
	base uint32
	size uint32
	next uint32

	chunks map[uint32]*MemoryChunk
	starts []uint32
}

func newHeapRegion(base, size uint32) *heapRegion {
	return &heapRegion{
		base:   base,
		size:   size,
		next:   1,
		chunks: make(map[uint32]*MemoryChunk),
	}
}

func (h *heapRegion) alloc(n uint32) uint32 {
	start := h.base + h.next
	h.chunks[start] = &MemoryChunk{Start: start, Size: n, Bytes: make([]byte, n)}
	h.starts = insertSorted(h.starts, start)
	h.next += n

	return start
}

// free releases the chunk starting exactly at addr. Any other address —
// one that was never returned by malloc, or the interior of a chunk — is
// ErrInvalidFree.
func (h *heapRegion) free(addr uint32) error {
	if _, ok := h.chunks[addr]; !ok {
		return faultAddr(ErrInvalidFree, addr)
	}

	delete(h.chunks, addr)

	i := sort.Search(len(h.starts), func(i int) bool { return h.starts[i] >= addr })
	if i < len(h.starts) && h.starts[i] == addr {
		h.starts = append(h.starts[:i], h.starts[i+1:]...)
	}

	return nil
}

func (h *heapRegion) chunkFor(addr uint32) *MemoryChunk {
	i := sort.Search(len(h.starts), func(i int) bool { return h.starts[i] > addr })
	if i == 0 {
		return nil
	}

	c := h.chunks[h.starts[i-1]]
	if addr >= c.Start && addr < c.Start+c.Size {
		return c
	}

	return nil
}

func (h *heapRegion) read(addr, n uint32) ([]byte, error) {
	c := h.chunkFor(addr)
	if c == nil || addr+n > c.Start+c.Size {
		return nil, faultAddr(ErrSegfault, addr)
	}

	off := addr - c.Start
	out := make([]byte, n)
	copy(out, c.Bytes[off:off+n])

	return out, nil
}

func (h *heapRegion) write(addr uint32, data []byte) error {
	c := h.chunkFor(addr)
	if c == nil || addr+uint32(len(data)) > c.Start+c.Size {
		return faultAddr(ErrSegfault, addr)
	}

	off := addr - c.Start
	copy(c.Bytes[off:], data)

	return nil
}
