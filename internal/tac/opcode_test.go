package tac

import "testing"

func TestOpcodes_RoundTripSourceSpelling(t *testing.T) {
	for op, name := range names {
		got, ok := Opcodes[name]
		if !ok {
			t.Errorf("Opcodes[%q] not found, want %s", name, op)

			continue
		}

		if got != op {
			t.Errorf("Opcodes[%q] = %s, want %s", name, got, op)
		}
	}
}

func TestOpcode_StringUnknown(t *testing.T) {
	var op Opcode = 255

	if got := op.String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}

func TestOpcode_ArityMatchesOperandCount(t *testing.T) {
	cases := []struct {
		op    Opcode
		arity int
	}{
		{Add, 3},
		{Minus, 2},
		{Goto, 1},
		{FunctionEnd, 0},
		{Call, 2},
		{Return, 1},
	}

	for _, c := range cases {
		if got := c.op.Arity(); got != c.arity {
			t.Errorf("%s.Arity() = %d, want %d", c.op, got, c.arity)
		}
	}
}
