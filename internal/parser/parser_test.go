package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/smoynes/tacrunner/internal/tac"
)

func TestParse_SkipsBlankLinesAndComments(t *testing.T) {
	src := `
# a comment
assignw x, 1

# another
printi x
exit 0
`

	prog, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(prog) != 3 {
		t.Fatalf("len(prog) = %d, want 3", len(prog))
	}

	if prog[0].Op != tac.AssignW {
		t.Errorf("prog[0].Op = %s, want assignw", prog[0].Op)
	}
}

func TestParse_HashInsideStringIsNotAComment(t *testing.T) {
	src := `assignw s, "a # b"`

	prog, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(prog) != 1 {
		t.Fatalf("len(prog) = %d, want 1", len(prog))
	}

	if prog[0].Operand(1).Str != "a # b" {
		t.Errorf("string operand = %q, want %q", prog[0].Operand(1).Str, "a # b")
	}
}

func TestParse_UnknownOpcodeAccumulatesSyntaxError(t *testing.T) {
	src := "frobnicate x, y\n"

	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatalf("Parse err = nil, want a syntax error")
	}

	if !errors.Is(err, ErrUnknownOpcode) {
		t.Errorf("err = %v, want ErrUnknownOpcode", err)
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("err does not unwrap to *SyntaxError")
	}

	if synErr.Line != 1 {
		t.Errorf("synErr.Line = %d, want 1", synErr.Line)
	}
}

func TestParse_WrongArityAccumulatesSyntaxError(t *testing.T) {
	src := "add x, y\n"

	_, err := Parse(strings.NewReader(src))
	if !errors.Is(err, ErrArity) {
		t.Errorf("err = %v, want ErrArity", err)
	}
}

func TestParse_MultipleErrorsAllAccumulate(t *testing.T) {
	src := "bogus1 x\nbogus2 y\n"

	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatalf("Parse err = nil, want accumulated errors")
	}

	joined := err.Error()
	if !strings.Contains(joined, "line 1") || !strings.Contains(joined, "line 2") {
		t.Errorf("err = %q, want both line 1 and line 2 reported", joined)
	}
}

func TestParse_ParsingContinuesPastASyntaxError(t *testing.T) {
	src := "bogus x\nexit 0\n"

	prog, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatalf("Parse err = nil, want a syntax error")
	}

	if len(prog) != 1 || prog[0].Op != tac.Exit {
		t.Errorf("prog = %v, want the valid exit instruction to still be parsed", prog)
	}
}

func TestParse_CommaInsideQuotedOperandDoesNotSplit(t *testing.T) {
	src := `assignw s, "a, b"`

	prog, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if prog[0].Operand(1).Str != "a, b" {
		t.Errorf("string operand = %q, want %q", prog[0].Operand(1).Str, "a, b")
	}
}
