package parser

import (
	"testing"

	"github.com/smoynes/tacrunner/internal/tac"
)

func TestParseOperand_Literals(t *testing.T) {
	cases := []struct {
		src  string
		kind tac.Kind
	}{
		{"true", tac.KindBool},
		{"false", tac.KindBool},
		{"'a'", tac.KindChar},
		{"'\\n'", tac.KindChar},
		{"42", tac.KindInt32},
		{"-1", tac.KindInt32},
		{"3.25", tac.KindFloat32},
		{`"hello"`, tac.KindString},
		{"x", tac.KindVarRef},
		{"x[0]", tac.KindVarRef},
		{"x[i]", tac.KindVarRef},
	}

	for _, c := range cases {
		op, err := parseOperand(c.src)
		if err != nil {
			t.Errorf("parseOperand(%q) error: %v", c.src, err)

			continue
		}

		if op.Kind != c.kind {
			t.Errorf("parseOperand(%q).Kind = %s, want %s", c.src, op.Kind, c.kind)
		}
	}
}

func TestParseOperand_IndexVariants(t *testing.T) {
	op, err := parseOperand("buf[4]")
	if err != nil {
		t.Fatalf("parseOperand: %v", err)
	}

	if !op.Var.IsAccess || op.Var.Index.Kind != tac.IndexConst || op.Var.Index.Const != 4 {
		t.Errorf("buf[4] = %+v, want a const-index access", op.Var)
	}

	op, err = parseOperand("buf[i]")
	if err != nil {
		t.Fatalf("parseOperand: %v", err)
	}

	if !op.Var.IsAccess || op.Var.Index.Kind != tac.IndexName || op.Var.Index.Name != "i" {
		t.Errorf("buf[i] = %+v, want a name-index access", op.Var)
	}
}

func TestParseOperand_EmptyFails(t *testing.T) {
	if _, err := parseOperand(""); err == nil {
		t.Errorf("parseOperand(\"\") err = nil, want an error")
	}
}

func TestParseOperand_UnterminatedStringFails(t *testing.T) {
	if _, err := parseOperand(`"unterminated`); err == nil {
		t.Errorf("parseOperand of unterminated string err = nil, want an error")
	}
}

func TestParseOperand_InvalidVarRefFails(t *testing.T) {
	if _, err := parseOperand("1abc"); err == nil {
		t.Errorf("parseOperand(\"1abc\") err = nil, want an error")
	}
}
