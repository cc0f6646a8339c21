package vm

import (
	"context"
	"fmt"

	"github.com/smoynes/tacrunner/internal/log"
	"github.com/smoynes/tacrunner/internal/tac"
)

// opTable dispatches an opcode to its handler. Each ops_*.go file
// contributes its slice of the table from an init() func, the way the
// teacher's cpu.go builds its opcode table package-wide rather than in
// one file.
var opTable = map[tac.Opcode]func(*VM, tac.Instruction) error{}

// Run drives the fetch/execute loop to completion: state NOT_STARTED to
// RUNNING, then RUNNING until FINISHED or ERROR (spec.md §4.4). It
// returns the fault that put the VM into ERROR, if any; a FINISHED VM
// with a nonzero exit code is not itself a Go error.
func (vm *VM) Run(ctx context.Context) error {
	vm.State = Running

	for vm.State == Running {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := vm.Step(); err != nil {
			return err
		}
	}

	return vm.LastErr
}

// Step executes exactly one instruction, advancing PC by one unless the
// instruction itself branched. It is exported so callers (and tests) can
// drive execution one instruction at a time.
func (vm *VM) Step() error {
	if vm.PC == len(vm.Program) {
		vm.State = Finished
		return nil
	}

	if vm.PC < 0 || vm.PC > len(vm.Program) {
		err := faultName(ErrMalformedInstruction, "program counter out of range")
		vm.fail(err)

		return err
	}

	ins := vm.Program[vm.PC]

	handler, ok := opTable[ins.Op]
	if !ok {
		err := faultName(ErrMalformedInstruction, fmt.Sprintf("no handler for %s", ins.Op))
		vm.fail(err)

		return err
	}

	if err := handler(vm, ins); err != nil {
		vm.fail(err)
		return err
	}

	if vm.State == Running {
		vm.PC++
	}

	return nil
}

func (vm *VM) fail(err error) {
	vm.State = ErrorState
	vm.LastErr = err
	log.Trace(vm.log, "instruction failed", "pc", vm.PC, "err", err)
}

// jumpTo sets PC so that Step's unconditional post-increment lands on
// target (spec.md §4.4 "branch-then-increment").
func (vm *VM) jumpTo(target int) {
	vm.PC = target - 1
}

func (vm *VM) resolveLabel(name string) (int, error) {
	idx, ok := vm.Labels.Resolve(name)
	if !ok {
		return 0, faultName(ErrUndefinedLabel, name)
	}

	return idx, nil
}

// CallDepth reports the number of pending backups, for the balance
// invariant of spec.md §5 and the --callstack report section.
func (vm *VM) CallDepth() int {
	return len(vm.backups)
}
