package vm

import "github.com/smoynes/tacrunner/internal/log"

// stackRegion is a single contiguous byte buffer plus a stack-pointer
// index. Reads and writes anywhere in [0, size) are permitted; writes at
// or beyond the current stack pointer are allowed but logged as a
// warning rather than failing, since caller-pushed parameter slots and
// pre-reserved frame-local space legitimately live there (spec.md §3,
// §9 "Stack-region slack writes").
type stackRegion struct {
	base uint32
	size uint32
	buf  []byte

	// sp mirrors the VM's current stack pointer (an absolute virtual
	// address), kept in sync by Memory.NoteStackPointer so writes can
	// tell slack from in-use space without threading SP through every
	// call.
	sp uint32
}

func newStackRegion(base, size uint32) *stackRegion {
	return &stackRegion{
		base: base,
		size: size,
		buf:  make([]byte, size),
		sp:   base,
	}
}

func (s *stackRegion) read(addr, n uint32) ([]byte, error) {
	off := addr - s.base
	if off+n > s.size {
		return nil, faultAddr(ErrSegfault, addr)
	}

	out := make([]byte, n)
	copy(out, s.buf[off:off+n])

	return out, nil
}

func (s *stackRegion) write(addr uint32, data []byte, logger *log.Logger) error {
	off := addr - s.base
	n := uint32(len(data))

	if off+n > s.size {
		return faultAddr(ErrSegfault, addr)
	}

	if addr >= s.sp && logger != nil {
		log.Warning(logger, "stack write at or beyond SP", "addr", addr, "sp", s.sp)
	}

	copy(s.buf[off:], data)

	return nil
}

func (s *stackRegion) slice(n uint32) []byte {
	if n > s.size {
		n = s.size
	}

	return s.buf[:n]
}

// NoteStackPointer records the VM's current stack pointer, an absolute
// virtual address, for the slack-write warning check above.
func (m *Memory) NoteStackPointer(sp uint32) {
	m.stack.sp = sp
}
