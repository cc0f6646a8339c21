package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.Itof] = opItof
	opTable[tac.Ftoi] = opFtoi
}

// opItof implements `itof dest, x`: interpret x as int32, convert to the
// equivalent float32 value, and write its bit pattern.
func opItof(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "itof destination must be a variable reference")
	}

	w, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	f := float32(wordToInt(w))

	return vm.StoreVar(destOp.Var, floatToWord(f))
}

// opFtoi implements `ftoi dest, x`: interpret x as float32, truncate
// toward zero (C-style), and write the resulting int32 bit pattern.
func opFtoi(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "ftoi destination must be a variable reference")
	}

	w, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	i := int32(wordToFloat(w))

	return vm.StoreVar(destOp.Var, intToWord(i))
}
