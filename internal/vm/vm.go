// Package vm implements the TAC execution engine: the instruction
// dispatch loop, segmented virtual memory, register file with callstack,
// and per-instruction semantics of spec.md §2–§4.
package vm

import (
	"bufio"
	"io"
	"os"

	"github.com/smoynes/tacrunner/internal/log"
	"github.com/smoynes/tacrunner/internal/tac"
)

// State is one of the four states of spec.md's state machine.
type State uint8

const (
	NotStarted State = iota
	Running
	Finished
	ErrorState
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Running:
		return "RUNNING"
	case Finished:
		return "FINISHED"
	case ErrorState:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Backup is the saved (PC, SP, FP, dest-register) tuple a call pushes and
// return pops (spec.md §3).
type Backup struct {
	SavedPC int
	SavedSP uint32
	SavedFP uint32
	Dest    string
}

// VM is the three-address-code virtual machine.
type VM struct {
	Program tac.Program
	PC      int

	FP uint32 // BASE
	SP uint32 // STACK

	State    State
	ExitCode int32
	LastErr  error

	Mem    *Memory
	Regs   *RegisterFile
	Labels *Labels

	backups []Backup

	log    *log.Logger
	stdin  *bufio.Reader
	stdout io.Writer

	regionSizes RegionSizes
}

// OptionFn configures a VM during construction, in the same functional-
// options style as the teacher's vm.OptionFn (internal/vm/vm.go).
type OptionFn func(*VM)

// WithLogger overrides the VM's diagnostic logger.
func WithLogger(l *log.Logger) OptionFn {
	return func(vm *VM) { vm.log = l }
}

// WithRegionSizes overrides the default static/stack/heap region sizes.
func WithRegionSizes(sizes RegionSizes) OptionFn {
	return func(vm *VM) { vm.regionSizes = sizes }
}

// WithStdin overrides the stream read* instructions read from.
func WithStdin(r io.Reader) OptionFn {
	return func(vm *VM) { vm.stdin = bufio.NewReader(r) }
}

// WithStdout overrides the stream print* instructions write to.
func WithStdout(w io.Writer) OptionFn {
	return func(vm *VM) { vm.stdout = w }
}

// New constructs a VM from a parsed program: it runs the label pre-scan,
// lays out the segmented address space, and pushes the implicit global
// frame (spec.md §4.4, §3). A duplicate label/function name is a static
// error (spec.md §7 kind 2): the error is returned together with a VM
// already in ERROR state, whose memory, registers and labels are unset.
func New(program tac.Program, opts ...OptionFn) (*VM, error) {
	vm := &VM{
		Program: program,
		State:   NotStarted,
	}

	for _, opt := range opts {
		opt(vm)
	}

	if vm.log == nil {
		vm.log = log.DefaultLogger()
	}

	if vm.stdin == nil {
		vm.stdin = bufio.NewReader(os.Stdin)
	}

	if vm.stdout == nil {
		vm.stdout = os.Stdout
	}

	labels, err := scanLabels(program)
	if err != nil {
		vm.State = ErrorState
		vm.LastErr = err

		return vm, err
	}

	vm.Labels = labels
	vm.Mem = NewMemory(vm.regionSizes, vm.log)
	vm.Regs = NewRegisterFile()

	vm.SP = vm.Mem.StackBase()
	vm.FP = vm.SP
	vm.Mem.NoteStackPointer(vm.SP)

	return vm, nil
}

// GetRegister reads a register by name. BASE and STACK bypass the frame
// map and read FP/SP directly (spec.md §4.3).
func (vm *VM) GetRegister(name string) (uint32, error) {
	switch name {
	case "BASE":
		return vm.FP, nil
	case "STACK":
		return vm.SP, nil
	default:
		v, ok := vm.Regs.Get(name)
		if !ok {
			return 0, faultName(ErrUndefinedRegister, name)
		}

		return v, nil
	}
}

// SetRegister writes a register by name, always to the top frame except
// for BASE/STACK, which update FP/SP directly. A STACK write must land on
// a valid stack-region address (spec.md §4.3).
func (vm *VM) SetRegister(name string, value uint32) error {
	switch name {
	case "BASE":
		vm.FP = value
		return nil
	case "STACK":
		if !vm.Mem.StackPointerValid(value) {
			return faultAddr(ErrSegfault, value)
		}

		vm.SP = value
		vm.Mem.NoteStackPointer(value)

		return nil
	default:
		vm.Regs.Set(name, value)
		return nil
	}
}

func (vm *VM) resolveIndex(ix tac.Index) (uint32, error) {
	switch ix.Kind {
	case tac.IndexNone:
		return 0, nil
	case tac.IndexConst:
		return uint32(ix.Const), nil
	case tac.IndexName:
		return vm.GetRegister(ix.Name)
	default:
		return 0, faultName(ErrMalformedInstruction, "invalid index")
	}
}

// GetVarValue returns register[var.Name] + index when IsAccess (a virtual
// address), or the bare scalar register value otherwise (spec.md §4.1).
func (vm *VM) GetVarValue(v tac.VarRef) (uint32, error) {
	base, err := vm.GetRegister(v.Name)
	if err != nil {
		return 0, err
	}

	if !v.IsAccess {
		return base, nil
	}

	idx, err := vm.resolveIndex(v.Index)
	if err != nil {
		return 0, err
	}

	return base + idx, nil
}

// AccessVarValue reads a word at GetVarValue's address when IsAccess, or
// returns the scalar register value otherwise.
func (vm *VM) AccessVarValue(v tac.VarRef) (uint32, error) {
	addr, err := vm.GetVarValue(v)
	if err != nil {
		return 0, err
	}

	if !v.IsAccess {
		return addr, nil
	}

	return vm.Mem.ReadWord(addr)
}

// ActualValue dispatches an operand to its word representation: variable
// operands go through AccessVarValue, scalars are bit-cast (spec.md
// §4.1).
func (vm *VM) ActualValue(o tac.Operand) (uint32, error) {
	switch o.Kind {
	case tac.KindBool:
		return boolWord(o.Bool), nil
	case tac.KindChar:
		return uint32(o.Char), nil
	case tac.KindInt32:
		return uint32(o.Int32), nil
	case tac.KindFloat32:
		return floatToWord(o.Float32), nil
	case tac.KindVarRef:
		return vm.AccessVarValue(o.Var)
	default:
		return 0, faultName(ErrMalformedInstruction, "literal operand not valid here")
	}
}

// StoreVar writes val to v: a register write when v is a scalar name, a
// memory write when v.IsAccess.
func (vm *VM) StoreVar(v tac.VarRef, val uint32) error {
	if !v.IsAccess {
		return vm.SetRegister(v.Name, val)
	}

	addr, err := vm.GetVarValue(v)
	if err != nil {
		return err
	}

	return vm.Mem.WriteWord(addr, val)
}

func boolWord(b bool) uint32 {
	if b {
		return 1
	}

	return 0
}
