package vm

// memory.go is the segmented virtual memory manager: one dispatcher that
// translates a flat virtual address to one of three region objects and
// forwards the access, the way the teacher's Memory controller
// (internal/vm/mem.go) is the one chokepoint all addressing passes
// through (spec.md §4.2).

import (
	"github.com/smoynes/tacrunner/internal/log"
)

// Region identifies which of the three address-space intervals an
// address belongs to.
type Region uint8

const (
	RegionNone Region = iota
	RegionStatic
	RegionStack
	RegionHeap
)

func (r Region) String() string {
	switch r {
	case RegionStatic:
		return "static"
	case RegionStack:
		return "stack"
	case RegionHeap:
		return "heap"
	default:
		return "none"
	}
}

// Default region sizes (spec.md §3: "defaults roughly ~50MB, ~25MB, ~25MB
// of a ~1GB envelope"). The envelope is larger than S+T+H: addresses
// above the heap region, up to the 32-bit word boundary, belong to no
// region and always fault.
const (
	DefaultStaticSize uint32 = 50 * 1024 * 1024
	DefaultStackSize  uint32 = 25 * 1024 * 1024
	DefaultHeapSize   uint32 = 25 * 1024 * 1024
)

// MemoryChunk records one bump-allocated chunk's bookkeeping: its size
// and (for static/heap) its own backing storage.
type MemoryChunk struct {
	Start uint32
	Size  uint32
	Bytes []byte
}

// RegionSizes configures the three region sizes at VM construction. Zero
// fields fall back to the package defaults.
type RegionSizes struct {
	Static uint32
	Stack  uint32
	Heap   uint32
}

// Memory is the segmented virtual address space: static region at
// [0, S), stack at [S, S+T), heap at [S+T, S+T+H).
type Memory struct {
	staticBase uint32
	stackBase  uint32
	heapBase   uint32

	static *staticRegion
	stack  *stackRegion
	heap   *heapRegion

	log *log.Logger
}

// NewMemory builds the three regions in fixed order, sizing them from
// sizes (falling back to DefaultStaticSize/Stack/Heap for zero fields).
func NewMemory(sizes RegionSizes, logger *log.Logger) *Memory {
	if sizes.Static == 0 {
		sizes.Static = DefaultStaticSize
	}

	if sizes.Stack == 0 {
		sizes.Stack = DefaultStackSize
	}

	if sizes.Heap == 0 {
		sizes.Heap = DefaultHeapSize
	}

	staticBase := uint32(0)
	stackBase := staticBase + sizes.Static
	heapBase := stackBase + sizes.Stack

	return &Memory{
		staticBase: staticBase,
		stackBase:  stackBase,
		heapBase:   heapBase,

		static: newStaticRegion(staticBase, sizes.Static),
		stack:  newStackRegion(stackBase, sizes.Stack),
		heap:   newHeapRegion(heapBase, sizes.Heap),

		log: logger,
	}
}

// regionFor returns which region addr belongs to. Address 0 is always
// the null sentinel and belongs to no region, even though it falls
// inside the static interval numerically (spec.md §9, Null sentinel).
func (m *Memory) regionFor(addr uint32) Region {
	switch {
	case addr == 0:
		return RegionNone
	case addr >= m.staticBase && addr < m.stackBase:
		return RegionStatic
	case addr >= m.stackBase && addr < m.heapBase:
		return RegionStack
	case addr >= m.heapBase && addr < m.heapBase+m.heap.size:
		return RegionHeap
	default:
		return RegionNone
	}
}

// span validates that [addr, addr+n) lies entirely within one region and
// returns that region, or ErrSegfault/ErrCrossRegion.
func (m *Memory) span(addr, n uint32) (Region, error) {
	if n == 0 {
		return RegionNone, faultAddr(ErrSegfault, addr)
	}

	last := addr + n - 1

	first := m.regionFor(addr)
	if first == RegionNone {
		return RegionNone, faultAddr(ErrSegfault, addr)
	}

	final := m.regionFor(last)
	if final == RegionNone {
		return RegionNone, faultAddr(ErrSegfault, last)
	}

	if first != final {
		return RegionNone, faultAddr(ErrCrossRegion, addr)
	}

	return first, nil
}

// Read returns the n bytes starting at addr.
func (m *Memory) Read(addr, n uint32) ([]byte, error) {
	region, err := m.span(addr, n)
	if err != nil {
		return nil, err
	}

	switch region {
	case RegionStatic:
		return m.static.read(addr, n)
	case RegionStack:
		return m.stack.read(addr, n)
	case RegionHeap:
		return m.heap.read(addr, n)
	default:
		return nil, faultAddr(ErrSegfault, addr)
	}
}

// Write stores data starting at addr.
func (m *Memory) Write(addr uint32, data []byte) error {
	region, err := m.span(addr, uint32(len(data)))
	if err != nil {
		return err
	}

	switch region {
	case RegionStatic:
		return m.static.write(addr, data)
	case RegionStack:
		return m.stack.write(addr, data, m.log)
	case RegionHeap:
		return m.heap.write(addr, data)
	default:
		return faultAddr(ErrSegfault, addr)
	}
}

// ReadWord reads a little-endian 32-bit word at addr.
func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	b, err := m.Read(addr, 4)
	if err != nil {
		return 0, err
	}

	return littleEndianWord(b), nil
}

// WriteWord stores a little-endian 32-bit word at addr.
func (m *Memory) WriteWord(addr uint32, w uint32) error {
	return m.Write(addr, wordBytes(w))
}

// ReadByte reads a single byte at addr.
func (m *Memory) ReadByte(addr uint32) (byte, error) {
	b, err := m.Read(addr, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// WriteByte stores a single byte at addr.
func (m *Memory) WriteByte(addr uint32, b byte) error {
	return m.Write(addr, []byte{b})
}

// Move copies n bytes from src to dst via an internal buffer, so that it
// behaves like memmove even when src and dst overlap within the same
// region (spec.md §4.2).
func (m *Memory) Move(dst, src, n uint32) error {
	buf, err := m.Read(src, n)
	if err != nil {
		return err
	}

	return m.Write(dst, buf)
}

// Malloc allocates n bytes in the heap region, returning the new chunk's
// address and true, or (0, false) without allocating if n is 0. It logs
// nothing itself; the malloc instruction reports the false case as a
// warning, not an error.
func (m *Memory) Malloc(n uint32) (uint32, bool) {
	if n == 0 {
		return 0, false
	}

	return m.heap.alloc(n), true
}

// Free releases a previously-malloc'd chunk.
func (m *Memory) Free(addr uint32) error {
	return m.heap.free(addr)
}

// GetStatic allocates n bytes in the static region. Static allocations
// are never freed.
func (m *Memory) GetStatic(n uint32) uint32 {
	return m.static.alloc(n)
}

// StackBase and StackSize expose the stack region's bounds, used by the
// register file to validate SP writes and by the report printer.
func (m *Memory) StackBase() uint32 { return m.stackBase }
func (m *Memory) StackSize() uint32 { return m.stack.size }

// StackPointerValid reports whether sp is a legal stack-region address.
func (m *Memory) StackPointerValid(sp uint32) bool {
	return sp >= m.stackBase && sp < m.stackBase+m.stack.size
}

// Summary describes one region for the state-dump report.
type Summary struct {
	Region    Region
	Base      uint32
	Size      uint32
	Used      uint32
	ChunkSize int
}

// Summaries returns a summary of all three regions, in address order.
func (m *Memory) Summaries() []Summary {
	return []Summary{
		{Region: RegionStatic, Base: m.staticBase, Size: m.static.size, Used: m.static.next, ChunkSize: len(m.static.chunks)},
		{Region: RegionStack, Base: m.stackBase, Size: m.stack.size, Used: m.stack.sp - m.stackBase, ChunkSize: 0},
		{Region: RegionHeap, Base: m.heapBase, Size: m.heap.size, Used: m.heap.next, ChunkSize: len(m.heap.chunks)},
	}
}

// StackSlice returns up to n bytes of the stack region's content starting
// at its base, for the --memory report's hex dump.
func (m *Memory) StackSlice(n uint32) []byte {
	return m.stack.slice(n)
}

// HeapChunkCount reports the number of live heap allocations, used by
// tests asserting free() returns the heap to its pre-call chunk count.
func (m *Memory) HeapChunkCount() int {
	return len(m.heap.chunks)
}

func littleEndianWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func wordBytes(w uint32) []byte {
	return []byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
}
