package vm

import "sort"

// staticRegion is a bump allocator with no free (spec.md §3). Its
// allocator starts at offset 1, not 0, so that address 0 — the null
// sentinel — is never handed out even though the region itself begins at
// absolute address 0.
type staticRegion struct {
	base uint32
	size uint32
	next uint32 // next offset to allocate from, relative to base

	chunks map[uint32]*MemoryChunk // key: absolute start address
	starts []uint32                // sorted chunk starts, for floor lookup
}

func newStaticRegion(base, size uint32) *staticRegion {
	return &staticRegion{
		base:   base,
		size:   size,
		next:   1,
		chunks: make(map[uint32]*MemoryChunk),
	}
}

func (s *staticRegion) alloc(n uint32) uint32 {
	start := s.base + s.next
	s.chunks[start] = &MemoryChunk{Start: start, Size: n, Bytes: make([]byte, n)}
	s.starts = insertSorted(s.starts, start)
	s.next += n

	return start
}

// chunkFor returns the chunk whose interval contains addr, using a floor
// lookup over the sorted start list (design notes §Segmented memory).
func (s *staticRegion) chunkFor(addr uint32) *MemoryChunk {
	i := sort.Search(len(s.starts), func(i int) bool { return s.starts[i] > addr })
	if i == 0 {
		return nil
	}

	c := s.chunks[s.starts[i-1]]
	if addr >= c.Start && addr < c.Start+c.Size {
		return c
	}

	return nil
}

func (s *staticRegion) read(addr, n uint32) ([]byte, error) {
	c := s.chunkFor(addr)
	if c == nil || addr+n > c.Start+c.Size {
		return nil, faultAddr(ErrSegfault, addr)
	}

	off := addr - c.Start
	out := make([]byte, n)
	copy(out, c.Bytes[off:off+n])

	return out, nil
}

func (s *staticRegion) write(addr uint32, data []byte) error {
	c := s.chunkFor(addr)
	if c == nil || addr+uint32(len(data)) > c.Start+c.Size {
		return faultAddr(ErrSegfault, addr)
	}

	off := addr - c.Start
	copy(c.Bytes[off:], data)

	return nil
}

func insertSorted(s []uint32, v uint32) []uint32 {
	i := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v

	return s
}
