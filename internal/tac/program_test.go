package tac

import "testing"

func TestInstruction_OperandOutOfRangeReturnsZeroValue(t *testing.T) {
	ins := Instruction{Op: Goto, N: 1, Operands: [4]Operand{Reg("L")}}

	if got := ins.Operand(1); got != (Operand{}) {
		t.Errorf("Operand(1) = %+v, want the zero Operand", got)
	}

	if got := ins.Operand(0); got.Var.Name != "L" {
		t.Errorf("Operand(0) = %+v, want register L", got)
	}
}

func TestInstruction_String(t *testing.T) {
	ins := Instruction{Op: Add, N: 3, Operands: [4]Operand{Reg("z"), Reg("x"), Int32(4)}}

	want := "add z, x, 4"
	if got := ins.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestProgram_String(t *testing.T) {
	p := Program{
		{Op: Exit, N: 1, Operands: [4]Operand{Int32(0)}},
	}

	got := p.String()
	want := "   0  exit 0\n"

	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
