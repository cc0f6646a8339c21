package vm

import (
	"errors"
	"testing"

	"github.com/smoynes/tacrunner/internal/tac"
)

func TestScanLabels_ResolvesLabelsAndFunctions(t *testing.T) {
	prog := tac.Program{
		{Op: tac.Label, N: 1, Operands: [4]tac.Operand{tac.Reg("START")}},
		{Op: tac.FunctionBegin, N: 2, Operands: [4]tac.Operand{tac.Reg("fn"), tac.Int32(0)}},
		{Op: tac.FunctionEnd},
	}

	labels, err := scanLabels(prog)
	if err != nil {
		t.Fatalf("scanLabels: %v", err)
	}

	if idx, ok := labels.Resolve("START"); !ok || idx != 0 {
		t.Errorf("START resolved to (%d, %v), want (0, true)", idx, ok)
	}

	if idx, ok := labels.Resolve("fn"); !ok || idx != 1 {
		t.Errorf("fn resolved to (%d, %v), want (1, true)", idx, ok)
	}

	if _, ok := labels.Resolve("missing"); ok {
		t.Errorf("missing label resolved, want not found")
	}
}

func TestScanLabels_DuplicateNameFails(t *testing.T) {
	prog := tac.Program{
		{Op: tac.Label, N: 1, Operands: [4]tac.Operand{tac.Reg("L")}},
		{Op: tac.Label, N: 1, Operands: [4]tac.Operand{tac.Reg("L")}},
	}

	_, err := scanLabels(prog)
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Errorf("err = %v, want ErrDuplicateLabel", err)
	}
}
