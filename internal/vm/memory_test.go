package vm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/smoynes/tacrunner/internal/log"
)

func testMemory(tt *testing.T) *Memory {
	tt.Helper()

	return NewMemory(RegionSizes{Static: 256, Stack: 256, Heap: 256}, log.New(io.Discard))
}

func TestMemory_NullSentinelAlwaysFaults(t *testing.T) {
	m := testMemory(t)

	if _, err := m.ReadByte(0); !errors.Is(err, ErrSegfault) {
		t.Errorf("read(0) err = %v, want ErrSegfault", err)
	}

	if err := m.WriteByte(0, 1); !errors.Is(err, ErrSegfault) {
		t.Errorf("write(0) err = %v, want ErrSegfault", err)
	}
}

func TestMemory_CrossRegionSpanFails(t *testing.T) {
	m := testMemory(t)

	// The last byte of the static region is base+255; a 4-byte read
	// starting at that byte crosses into the stack region.
	addr := m.staticBase + 255

	if _, err := m.Read(addr, 4); !errors.Is(err, ErrCrossRegion) {
		t.Errorf("cross-region read err = %v, want ErrCrossRegion", err)
	}
}

func TestMemory_MallocFreeRoundTrip(t *testing.T) {
	m := testMemory(t)

	before := m.HeapChunkCount()

	addr, ok := m.Malloc(4)
	if !ok || addr == 0 {
		t.Fatalf("malloc(4) = (%#x, %v), want a nonzero address", addr, ok)
	}

	if err := m.WriteWord(addr, 0xDEADBEEF); err != nil {
		t.Fatalf("write_word: %v", err)
	}

	got, err := m.ReadWord(addr)
	if err != nil {
		t.Fatalf("read_word: %v", err)
	}

	if got != 0xDEADBEEF {
		t.Errorf("read_word = %#x, want %#x", got, 0xDEADBEEF)
	}

	if err := m.Free(addr); err != nil {
		t.Fatalf("free: %v", err)
	}

	if after := m.HeapChunkCount(); after != before {
		t.Errorf("heap chunk count = %d, want %d (pre-malloc count)", after, before)
	}

	if _, err := m.ReadWord(addr); !errors.Is(err, ErrSegfault) {
		t.Errorf("read after free err = %v, want ErrSegfault", err)
	}
}

func TestMemory_MallocZeroIsWarningNotFault(t *testing.T) {
	m := testMemory(t)

	addr, ok := m.Malloc(0)
	if ok {
		t.Errorf("malloc(0) ok = true, want false")
	}

	if addr != 0 {
		t.Errorf("malloc(0) addr = %#x, want 0 (null sentinel)", addr)
	}
}

func TestMemory_FreeForeignAddressFails(t *testing.T) {
	m := testMemory(t)

	if err := m.Free(m.heapBase + 1); !errors.Is(err, ErrInvalidFree) {
		t.Errorf("free(never-allocated) err = %v, want ErrInvalidFree", err)
	}
}

func TestMemory_StackWriteAtOrBeyondSPWarnsButSucceeds(t *testing.T) {
	var logBuf bytes.Buffer

	m := NewMemory(RegionSizes{Static: 256, Stack: 256, Heap: 256}, log.New(&logBuf))

	sp := m.StackBase() + 8
	m.NoteStackPointer(sp)

	// Writing at sp (slack space) must succeed, not fault.
	if err := m.WriteWord(sp, 42); err != nil {
		t.Errorf("write at SP err = %v, want nil (warning only)", err)
	}

	if !strings.Contains(logBuf.String(), "WARNING") {
		t.Errorf("log = %q, want a WARNING line for the slack write", logBuf.String())
	}
}

func TestMemory_MoveWithinRegion(t *testing.T) {
	m := testMemory(t)

	src := m.GetStatic(4)
	dst := m.GetStatic(4)

	if err := m.WriteWord(src, 7); err != nil {
		t.Fatalf("write_word: %v", err)
	}

	if err := m.Move(dst, src, 4); err != nil {
		t.Fatalf("move: %v", err)
	}

	got, err := m.ReadWord(dst)
	if err != nil {
		t.Fatalf("read_word: %v", err)
	}

	if got != 7 {
		t.Errorf("moved value = %d, want 7", got)
	}
}

func TestMemory_StackPointerValid(t *testing.T) {
	m := testMemory(t)

	if !m.StackPointerValid(m.StackBase()) {
		t.Errorf("stack base should be a valid SP")
	}

	if m.StackPointerValid(m.StackBase() + m.StackSize()) {
		t.Errorf("one past the stack region end should not be a valid SP")
	}
}
