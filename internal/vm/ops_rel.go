package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.Eq] = opEq
	opTable[tac.Neq] = opNeq
	opTable[tac.Lt] = opLt
	opTable[tac.Leq] = opLeq
	opTable[tac.Gt] = opGt
	opTable[tac.Geq] = opGeq
}

// opEq and opNeq compare raw words: no int/float typing applies, per
// spec.md §4.5 ("eq/neq are pure bit equality").
func opEq(vm *VM, ins tac.Instruction) error  { return bitEquality(vm, ins, true) }
func opNeq(vm *VM, ins tac.Instruction) error { return bitEquality(vm, ins, false) }

func bitEquality(vm *VM, ins tac.Instruction, wantEqual bool) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "relational destination must be a variable reference")
	}

	lv, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	rv, err := vm.ActualValue(ins.Operand(2))
	if err != nil {
		return err
	}

	result := (lv == rv) == wantEqual

	return vm.StoreVar(destOp.Var, boolWord(result))
}

func binaryRel(
	vm *VM,
	ins tac.Instruction,
	intCmp func(a, b int32) bool,
	floatCmp func(a, b float32) bool,
) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "relational destination must be a variable reference")
	}

	lop, rop := ins.Operand(1), ins.Operand(2)

	lFloat := operandIsFloat(lop)
	rFloat := operandIsFloat(rop)

	if lFloat != rFloat {
		return ErrTypeMismatch
	}

	lv, err := vm.ActualValue(lop)
	if err != nil {
		return err
	}

	rv, err := vm.ActualValue(rop)
	if err != nil {
		return err
	}

	var result bool
	if lFloat {
		result = floatCmp(wordToFloat(lv), wordToFloat(rv))
	} else {
		result = intCmp(wordToInt(lv), wordToInt(rv))
	}

	return vm.StoreVar(destOp.Var, boolWord(result))
}

func opLt(vm *VM, ins tac.Instruction) error {
	return binaryRel(vm, ins,
		func(a, b int32) bool { return a < b },
		func(a, b float32) bool { return a < b },
	)
}

func opLeq(vm *VM, ins tac.Instruction) error {
	return binaryRel(vm, ins,
		func(a, b int32) bool { return a <= b },
		func(a, b float32) bool { return a <= b },
	)
}

func opGt(vm *VM, ins tac.Instruction) error {
	return binaryRel(vm, ins,
		func(a, b int32) bool { return a > b },
		func(a, b float32) bool { return a > b },
	)
}

func opGeq(vm *VM, ins tac.Instruction) error {
	return binaryRel(vm, ins,
		func(a, b int32) bool { return a >= b },
		func(a, b float32) bool { return a >= b },
	)
}
