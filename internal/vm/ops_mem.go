package vm

import (
	"github.com/smoynes/tacrunner/internal/log"
	"github.com/smoynes/tacrunner/internal/tac"
)

func init() {
	opTable[tac.Malloc] = opMalloc
	opTable[tac.Memcpy] = opMemcpy
	opTable[tac.Free] = opFree
}

// opMalloc implements `malloc dest, n`. A zero-byte request is a warning,
// not a fault, and yields the null sentinel (spec.md §4.2).
func opMalloc(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "malloc destination must be a variable reference")
	}

	n, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	addr, ok := vm.Mem.Malloc(n)
	if !ok {
		log.Warning(vm.log, "malloc of zero bytes", "dest", destOp.Var.Name)
	}

	return vm.StoreVar(destOp.Var, addr)
}

// opFree implements `free x`: x's value is the heap address to release.
func opFree(vm *VM, ins tac.Instruction) error {
	addr, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	return vm.Mem.Free(addr)
}

// opMemcpy implements `memcpy dst, src, n`: dst/src registers hold
// addresses, copied via the region-safe Move.
func opMemcpy(vm *VM, ins tac.Instruction) error {
	dst, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	src, err := vm.ActualValue(ins.Operand(1))
	if err != nil {
		return err
	}

	n, err := vm.ActualValue(ins.Operand(2))
	if err != nil {
		return err
	}

	return vm.Mem.Move(dst, src, n)
}
