package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.Param] = opParam
	opTable[tac.Call] = opCall
	opTable[tac.Return] = opReturn
	opTable[tac.Exit] = opExit
}

// opParam implements `param x, offset`: materialize the address of the
// offset-th caller-pushed parameter slot into register x (spec.md §4.5).
func opParam(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "param destination must be a variable reference")
	}

	offset, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	return vm.StoreVar(destOp.Var, vm.SP+offset)
}

// opCall implements `call dest, function_name`: push a backup of the
// current (PC, SP, FP, dest name) and jump to the callee's entry.
func opCall(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "call destination must be a variable reference")
	}

	target, err := vm.resolveLabel(ins.Operand(1).Var.Name)
	if err != nil {
		return err
	}

	vm.backups = append(vm.backups, Backup{
		SavedPC: vm.PC,
		SavedSP: vm.SP,
		SavedFP: vm.FP,
		Dest:    destOp.Var.Name,
	})

	vm.jumpTo(target)

	return nil
}

// opReturn implements `return v`: the return value is computed in the
// callee's frame before anything is popped, then the caller's (PC, SP,
// FP) are restored and the value is written to the caller's destination
// register (spec.md §4.5).
func opReturn(vm *VM, ins tac.Instruction) error {
	val, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	if vm.Regs.Depth() <= 1 || len(vm.backups) == 0 {
		return faultName(ErrStackUnderflow, "return with no active call")
	}

	backup := vm.unwindFrame()

	return vm.SetRegister(backup.Dest, val)
}

// opExit implements `exit n`: set the exit status and transition to
// FINISHED.
func opExit(vm *VM, ins tac.Instruction) error {
	n, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	vm.ExitCode = wordToInt(n)
	vm.State = Finished

	return nil
}

// unwindFrame pops the top activation record and the top backup,
// restoring (PC, SP, FP) from the backup. Shared by return and
// @function_end (spec.md §4.5).
func (vm *VM) unwindFrame() Backup {
	vm.Regs.Pop()

	n := len(vm.backups)
	backup := vm.backups[n-1]
	vm.backups = vm.backups[:n-1]

	vm.PC = backup.SavedPC
	vm.FP = backup.SavedFP
	vm.SP = backup.SavedSP
	vm.Mem.NoteStackPointer(vm.SP)

	return backup
}
