package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.Add] = opAdd
	opTable[tac.Sub] = opSub
	opTable[tac.Mult] = opMult
	opTable[tac.Div] = opDiv
	opTable[tac.Mod] = opMod
	opTable[tac.Minus] = opMinus
	opTable[tac.Neg] = opNeg
}

// operandIsFloat decides int-vs-float for one operand of a binary
// arithmetic or relational instruction: literals carry their kind
// directly, variables are judged by the first character of their name
// (spec.md §9 "Float type inference by first letter").
func operandIsFloat(o tac.Operand) bool {
	switch o.Kind {
	case tac.KindFloat32:
		return true
	case tac.KindVarRef:
		return nameIsFloat(o.Var.Name)
	default:
		return false
	}
}

func nameIsFloat(name string) bool {
	return len(name) > 0 && name[0] == 'f'
}

func binaryArith(
	vm *VM,
	ins tac.Instruction,
	intFn func(a, b int32) (int32, error),
	floatFn func(a, b float32) (float32, error),
) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "arithmetic destination must be a variable reference")
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

	var result uint32

	if lFloat {
		r, err := floatFn(wordToFloat(lv), wordToFloat(rv))
		if err != nil {
			return err
		}

		result = floatToWord(r)
	} else {
		r, err := intFn(wordToInt(lv), wordToInt(rv))
		if err != nil {
			return err
		}

		result = intToWord(r)
	}

	return vm.StoreVar(destOp.Var, result)
}

func opAdd(vm *VM, ins tac.Instruction) error {
	return binaryArith(vm, ins,
		func(a, b int32) (int32, error) { return a + b, nil },
		func(a, b float32) (float32, error) { return a + b, nil },
	)
}

func opSub(vm *VM, ins tac.Instruction) error {
	return binaryArith(vm, ins,
		func(a, b int32) (int32, error) { return a - b, nil },
		func(a, b float32) (float32, error) { return a - b, nil },
	)
}

func opMult(vm *VM, ins tac.Instruction) error {
	return binaryArith(vm, ins,
		func(a, b int32) (int32, error) { return a * b, nil },
		func(a, b float32) (float32, error) { return a * b, nil },
	)
}

func opDiv(vm *VM, ins tac.Instruction) error {
	return binaryArith(vm, ins,
		func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}

			return a / b, nil
		},
		func(a, b float32) (float32, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}

			return a / b, nil
		},
	)
}

func opMod(vm *VM, ins tac.Instruction) error {
	return binaryArith(vm, ins,
		func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, ErrDivByZero
			}

			return a % b, nil
		},
		func(a, b float32) (float32, error) {
			return 0, faultName(ErrTypeMismatch, "mod is undefined for float operands")
		},
	)
}

// opMinus implements `minus dest, x`: unary arithmetic negation, typed by
// the destination register name rather than the operand (spec.md §4.5
// "Unary").
func opMinus(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "minus destination must be a variable reference")
	}

	xv, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	var result uint32
	if nameIsFloat(destOp.Var.Name) {
		result = floatToWord(-wordToFloat(xv))
	} else {
		result = intToWord(-wordToInt(xv))
	}

	return vm.StoreVar(destOp.Var, result)
}

// opNeg implements `neg dest, x`: bitwise complement of the raw word,
// type-agnostic.
func opNeg(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "neg destination must be a variable reference")
	}

	xv, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	return vm.StoreVar(destOp.Var, ^xv)
}
