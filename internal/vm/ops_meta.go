package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.StaticV] = opStaticV
	opTable[tac.StringLit] = opStringLit
	opTable[tac.Label] = opLabel
	opTable[tac.FunctionBegin] = opFunctionBegin
	opTable[tac.FunctionEnd] = opFunctionEnd
}

// opStaticV implements `@staticv name, nbytes`: reserve nbytes in the
// static region and store the address in register name.
func opStaticV(vm *VM, ins tac.Instruction) error {
	name := ins.Operand(0).Var.Name

	n, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	addr := vm.Mem.GetStatic(n)

	return vm.SetRegister(name, addr)
}

// opStringLit implements `@string name, literal`: write literal+NUL to a
// fresh static chunk and store its address in register name.
func opStringLit(vm *VM, ins tac.Instruction) error {
	name := ins.Operand(0).Var.Name
	lit := ins.Operand(1)

	if lit.Kind != tac.KindString {
		return faultName(ErrMalformedInstruction, "@string requires a string literal operand")
	}

	bytes := append([]byte(lit.Str), 0)
	addr := vm.Mem.GetStatic(uint32(len(bytes)))

	if err := vm.Mem.Write(addr, bytes); err != nil {
		return err
	}

	return vm.SetRegister(name, addr)
}

// opLabel is a pure marker; it carries no runtime effect, only a
// pre-scanned branch target.
func opLabel(vm *VM, ins tac.Instruction) error {
	return nil
}

// opFunctionBegin implements `@function_begin name, stack_size`: FP ←
// current SP, SP advances by stack_size, and a new activation record is
// pushed (spec.md §4.5 procedure protocol).
func opFunctionBegin(vm *VM, ins tac.Instruction) error {
	name := ins.Operand(0).Var.Name

	stackSize, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	newFP := vm.SP
	newSP := vm.SP + stackSize

	if !vm.Mem.StackPointerValid(newSP) {
		return faultAddr(ErrStackOverflow, newSP)
	}

	vm.FP = newFP
	vm.SP = newSP
	vm.Mem.NoteStackPointer(vm.SP)
	vm.Regs.Push(name, newFP)

	return nil
}

// opFunctionEnd implements the implicit return at the bottom of a
// function body: pop the backup, restore (PC, SP, FP), pop the
// activation record. No return value is written.
func opFunctionEnd(vm *VM, ins tac.Instruction) error {
	if vm.Regs.Depth() <= 1 || len(vm.backups) == 0 {
		return faultName(ErrStackUnderflow, "function_end with no active call")
	}

	vm.unwindFrame()

	return nil
}
