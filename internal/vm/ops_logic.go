package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.And] = opAnd
	opTable[tac.Or] = opOr
}

func truthy(w uint32) bool {
	return w&0xFF != 0
}

func binaryLogic(vm *VM, ins tac.Instruction, fn func(a, b bool) bool) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "logical destination must be a variable reference")
	}

	lv, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	rv, err := vm.ActualValue(ins.Operand(2))
	if err != nil {
		return err
	}

	result := fn(truthy(lv), truthy(rv))

	return vm.StoreVar(destOp.Var, boolWord(result))
}

func opAnd(vm *VM, ins tac.Instruction) error {
	return binaryLogic(vm, ins, func(a, b bool) bool { return a && b })
}

func opOr(vm *VM, ins tac.Instruction) error {
	return binaryLogic(vm, ins, func(a, b bool) bool { return a || b })
}
