package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smoynes/tacrunner/internal/tac"
)

func init() {
	opTable[tac.Printi] = opPrinti
	opTable[tac.Printf] = opPrintf
	opTable[tac.Print] = opPrint
	opTable[tac.Printc] = opPrintc
	opTable[tac.Readi] = opReadi
	opTable[tac.Readf] = opReadf
	opTable[tac.Read] = opRead
	opTable[tac.Readc] = opReadc
}

// All program output is line-oriented and carries the fixed `program: `
// prefix, distinguishing it from the VM's own tac-runner diagnostics
// (spec.md §4.5, §6).
func (vm *VM) writeLine(format string, args ...any) {
	fmt.Fprintf(vm.stdout, "program: "+format+"\n", args...)
}

func opPrinti(vm *VM, ins tac.Instruction) error {
	w, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	vm.writeLine("%d", wordToInt(w))

	return nil
}

func opPrintf(vm *VM, ins tac.Instruction) error {
	w, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	vm.writeLine("%g", wordToFloat(w))

	return nil
}

func opPrintc(vm *VM, ins tac.Instruction) error {
	w, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	vm.writeLine("%c", byte(w))

	return nil
}

// opPrint implements `print s`: s's value is the address of a
// NUL-terminated string in memory.
func opPrint(vm *VM, ins tac.Instruction) error {
	addr, err := vm.ActualValue(ins.Operand(0))
	if err != nil {
		return err
	}

	var sb strings.Builder

	for {
		b, err := vm.Mem.ReadByte(addr)
		if err != nil {
			return err
		}

		if b == 0 {
			break
		}

		sb.WriteByte(b)
		addr++
	}

	vm.writeLine("%s", sb.String())

	return nil
}

func (vm *VM) readLine() (string, error) {
	line, err := vm.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", faultName(ErrIOParse, "unexpected end of input")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func opReadi(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "readi destination must be a variable reference")
	}

	line, err := vm.readLine()
	if err != nil {
		return err
	}

	n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		return faultName(ErrIOParse, "readi: "+err.Error())
	}

	return vm.StoreVar(destOp.Var, intToWord(int32(n)))
}

func opReadf(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "readf destination must be a variable reference")
	}

	line, err := vm.readLine()
	if err != nil {
		return err
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(line), 32)
	if err != nil {
		return faultName(ErrIOParse, "readf: "+err.Error())
	}

	return vm.StoreVar(destOp.Var, floatToWord(float32(f)))
}

func opReadc(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "readc destination must be a variable reference")
	}

	line, err := vm.readLine()
	if err != nil {
		return err
	}

	if len(line) == 0 {
		return faultName(ErrIOParse, "readc: empty line")
	}

	return vm.StoreVar(destOp.Var, uint32(line[0]))
}

// opRead implements `read s`: read a line into the memory address held
// by the target register, including the terminating NUL.
func opRead(vm *VM, ins tac.Instruction) error {
	destOp := ins.Operand(0)
	if destOp.Kind != tac.KindVarRef {
		return faultName(ErrMalformedInstruction, "read destination must be a variable reference")
	}

	line, err := vm.readLine()
	if err != nil {
		return err
	}

	addr, err := vm.GetVarValue(destOp.Var)
	if err != nil {
		return err
	}

	return vm.Mem.Write(addr, append([]byte(line), 0))
}
