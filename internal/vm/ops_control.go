package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.Goto] = opGoto
	opTable[tac.Goif] = opGoif
	opTable[tac.Goifnot] = opGoifnot
}

func opGoto(vm *VM, ins tac.Instruction) error {
	target, err := vm.resolveLabel(ins.Operand(0).Var.Name)
	if err != nil {
		return err
	}

	vm.jumpTo(target)

	return nil
}

func opGoif(vm *VM, ins tac.Instruction) error {
	return branchIf(vm, ins, true)
}

func opGoifnot(vm *VM, ins tac.Instruction) error {
	return branchIf(vm, ins, false)
}

func branchIf(vm *VM, ins tac.Instruction, on bool) error {
	cond, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	if truthy(cond) != on {
		return nil
	}

	target, err := vm.resolveLabel(ins.Operand(0).Var.Name)
	if err != nil {
		return err
	}

	vm.jumpTo(target)

	return nil
}
