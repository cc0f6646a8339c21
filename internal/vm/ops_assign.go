package vm

import "github.com/smoynes/tacrunner/internal/tac"

func init() {
	opTable[tac.AssignW] = opAssignW
	opTable[tac.AssignB] = opAssignB
}

func opAssignW(vm *VM, ins tac.Instruction) error { return opAssign(vm, ins, 4) }
func opAssignB(vm *VM, ins tac.Instruction) error { return opAssign(vm, ins, 1) }

// opAssign implements `lhs := rhs` for both widths: the four is_access
// sub-cases of spec.md §4.5's assign table collapse to two code paths
// because ActualValue already dereferences a variable operand when it is
// itself is_access.
func opAssign(vm *VM, ins tac.Instruction, width uint32) error {
	lhsOp := ins.Operand(0)
	if lhsOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "assign destination must be a variable reference")
	}

	lhs := lhsOp.Var
	rhsOp := ins.Operand(1)
	rhsIsAccess := rhsOp.Kind == tac.KindVarRef && rhsOp.Var.IsAccess

	if lhs.IsAccess && rhsIsAccess {
		return faultName(ErrMalformedInstruction, "memory-to-memory assign is forbidden")
	}

	val, err := vm.ActualValue(rhsOp)
	if err != nil {
		return err
	}

	if !lhs.IsAccess {
		if width == 1 {
			val &= 0xFF
		}

		return vm.SetRegister(lhs.Name, val)
	}

	addr, err := vm.GetVarValue(lhs)
	if err != nil {
		return err
	}

	if width == 4 {
		return vm.Mem.WriteWord(addr, val)
	}

	return vm.Mem.WriteByte(addr, byte(val))
}
