package vm

// regs.go is the register file: a stack of activation records, each
// owning a name→word map. Writes always target the top frame; reads walk
// the stack top-down and return the first match (spec.md §4.3). This is
// the TAC analogue of the teacher's flat general-purpose register file
// (internal/vm/vm.go), generalized from eight fixed registers to an
// unbounded, name-keyed set scoped per call frame.

// GlobalFrameName is the function name of the implicit frame pushed at
// VM construction.
const GlobalFrameName = "<global>"

// Frame is one activation record: a function's local registers plus the
// frame pointer that was current when it was entered.
type Frame struct {
	FunctionName string
	Regs         map[string]uint32
	EntryFP      uint32
}

func newFrame(name string, entryFP uint32) *Frame {
	return &Frame{
		FunctionName: name,
		Regs:         make(map[string]uint32),
		EntryFP:      entryFP,
	}
}

// RegisterFile is the callstack of activation records.
type RegisterFile struct {
	frames []*Frame
}

// NewRegisterFile creates a register file with the implicit global frame
// already pushed.
func NewRegisterFile() *RegisterFile {
	rf := &RegisterFile{}
	rf.Push(GlobalFrameName, 0)

	return rf
}

// Push adds a new top frame, as @function_begin does (call itself only
// pushes a backup).
func (rf *RegisterFile) Push(name string, entryFP uint32) *Frame {
	f := newFrame(name, entryFP)
	rf.frames = append(rf.frames, f)

	return f
}

// Pop removes the top frame, as return/@function_end do. It is a
// programming error to call Pop with only the global frame remaining;
// callers must not let execution reach that point (spec.md §5 balance
// invariant).
func (rf *RegisterFile) Pop() *Frame {
	n := len(rf.frames)
	top := rf.frames[n-1]
	rf.frames = rf.frames[:n-1]

	return top
}

// Top returns the current (innermost) frame.
func (rf *RegisterFile) Top() *Frame {
	return rf.frames[len(rf.frames)-1]
}

// Depth returns the number of frames, including the global frame.
func (rf *RegisterFile) Depth() int {
	return len(rf.frames)
}

// Get looks up name starting at the top frame and walking outward,
// returning the first match.
func (rf *RegisterFile) Get(name string) (uint32, bool) {
	for i := len(rf.frames) - 1; i >= 0; i-- {
		if v, ok := rf.frames[i].Regs[name]; ok {
			return v, true
		}
	}

	return 0, false
}

// Set writes name in the top frame only.
func (rf *RegisterFile) Set(name string, value uint32) {
	rf.Top().Regs[name] = value
}

// Frames returns the callstack, outermost (global) first, for the
// --callstack and --registers report sections.
func (rf *RegisterFile) Frames() []*Frame {
	return rf.frames
}
