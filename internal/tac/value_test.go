package tac

import "testing"

func TestVarRef_StringFormatsAccessVsRegister(t *testing.T) {
	reg := Reg("x")
	if got := reg.Var.String(); got != "x" {
		t.Errorf("String() = %q, want %q", got, "x")
	}

	access := Access("a", Index{Kind: IndexConst, Const: 4})
	if got := access.Var.String(); got != "a[4]" {
		t.Errorf("String() = %q, want %q", got, "a[4]")
	}

	indirect := Access("a", Index{Kind: IndexName, Name: "i"})
	if got := indirect.Var.String(); got != "a[i]" {
		t.Errorf("String() = %q, want %q", got, "a[i]")
	}
}

func TestOperand_IsVar(t *testing.T) {
	if !Reg("x").IsVar() {
		t.Errorf("Reg(...).IsVar() = false, want true")
	}

	if Int32(1).IsVar() {
		t.Errorf("Int32(...).IsVar() = true, want false")
	}
}

func TestOperand_ConstructorsSetKind(t *testing.T) {
	cases := []struct {
		name string
		op   Operand
		kind Kind
	}{
		{"bool", Bool(true), KindBool},
		{"char", Char('a'), KindChar},
		{"int32", Int32(1), KindInt32},
		{"float32", Float32(1.5), KindFloat32},
		{"string", String("s"), KindString},
		{"varref", Reg("x"), KindVarRef},
	}

	for _, c := range cases {
		if c.op.Kind != c.kind {
			t.Errorf("%s: Kind = %s, want %s", c.name, c.op.Kind, c.kind)
		}
	}
}

func TestAccess_SetsIsAccess(t *testing.T) {
	op := Access("buf", Index{Kind: IndexConst, Const: 0})

	if !op.Var.IsAccess {
		t.Errorf("IsAccess = false, want true")
	}

	if op.Var.Name != "buf" {
		t.Errorf("Name = %q, want %q", op.Var.Name, "buf")
	}
}
