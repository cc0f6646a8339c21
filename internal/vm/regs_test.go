package vm

import "testing"

func TestRegisterFile_WritesTargetTopFrame(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set("x", 1)
	rf.Push("callee", 0)
	rf.Set("x", 2)

	if v, ok := rf.Get("x"); !ok || v != 2 {
		t.Errorf("Get(x) = (%d, %v), want (2, true) from the top frame", v, ok)
	}

	rf.Pop()

	if v, ok := rf.Get("x"); !ok || v != 1 {
		t.Errorf("Get(x) after pop = (%d, %v), want (1, true) from the outer frame", v, ok)
	}
}

func TestRegisterFile_LookupWalksTopDown(t *testing.T) {
	rf := NewRegisterFile()
	rf.Set("shared", 10)
	rf.Push("inner", 0)

	if v, ok := rf.Get("shared"); !ok || v != 10 {
		t.Errorf("Get(shared) = (%d, %v), want (10, true) found in outer frame", v, ok)
	}
}

func TestRegisterFile_UndefinedLookupFails(t *testing.T) {
	rf := NewRegisterFile()

	if _, ok := rf.Get("nope"); ok {
		t.Errorf("Get(nope) ok = true, want false")
	}
}

func TestRegisterFile_DepthTracksPushPop(t *testing.T) {
	rf := NewRegisterFile()
	if rf.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1 (global frame)", rf.Depth())
	}

	rf.Push("f", 0)
	if rf.Depth() != 2 {
		t.Errorf("depth after push = %d, want 2", rf.Depth())
	}

	rf.Pop()
	if rf.Depth() != 1 {
		t.Errorf("depth after pop = %d, want 1", rf.Depth())
	}
}
