// Package parser lexes and parses TAC source text into a tac.Program
// (spec.md §6). It is deliberately simple: one line is one instruction,
// there is no macro or include facility, and label resolution is left
// entirely to the VM's pre-scan pass (spec.md §4.4) — this package only
// ever produces label operands that carry the label's name (as a plain
// variable reference), never resolved addresses.
package parser

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/smoynes/tacrunner/internal/tac"
)

// ErrUnknownOpcode is wrapped into a SyntaxError when a line's operator
// does not name a known instruction.
var ErrUnknownOpcode = errors.New("unknown opcode")

// ErrArity is wrapped into a SyntaxError when an instruction has the
// wrong number of operands for its opcode.
var ErrArity = errors.New("wrong number of operands")

// Parser accumulates parsed instructions and syntax errors across one or
// more calls to Parse.
type Parser struct {
	instr []tac.Instruction
	errs  []error
}

// New creates an empty Parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads and parses every line of in, appending instructions and any
// syntax errors to the Parser's accumulated state.
func (p *Parser) Parse(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0

	for scanner.Scan() {
		line++

		text := stripComment(scanner.Text())
		if strings.TrimSpace(text) == "" {
			continue
		}

		ins, err := parseLine(text)
		if err != nil {
			p.errs = append(p.errs, &SyntaxError{Line: line, Text: text, Err: err})
			continue
		}

		ins.Line = line
		p.instr = append(p.instr, ins)
	}
}

// Program returns the instructions parsed so far.
func (p *Parser) Program() tac.Program {
	return tac.Program(p.instr)
}

// Err returns the accumulated syntax errors, joined, or nil if there were
// none.
func (p *Parser) Err() error {
	return errors.Join(p.errs...)
}

// Parse is a convenience wrapper for parsing a single source in one call.
func Parse(in io.Reader) (tac.Program, error) {
	p := New()
	p.Parse(in)

	return p.Program(), p.Err()
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 && !insideQuotes(line, i) {
		return line[:i]
	}

	return line
}

func insideQuotes(line string, at int) bool {
	inStr, inChar := false, false

	for i := 0; i < at; i++ {
		switch line[i] {
		case '"':
			if !inChar {
				inStr = !inStr
			}
		case '\'':
			if !inStr {
				inChar = !inChar
			}
		}
	}

	return inStr || inChar
}

func parseLine(line string) (tac.Instruction, error) {
	line = strings.TrimSpace(line)

	operator, rest, _ := strings.Cut(line, " ")
	operator = strings.TrimSpace(operator)
	rest = strings.TrimSpace(rest)

	op, ok := tac.Opcodes[operator]
	if !ok {
		return tac.Instruction{}, errors.Join(ErrUnknownOpcode, errors.New(operator))
	}

	var operands []string
	if rest != "" {
		operands = splitOperands(rest)
	}

	if len(operands) != op.Arity() {
		return tac.Instruction{}, errors.Join(ErrArity, errors.New(operator))
	}

	ins := tac.Instruction{Op: op, N: len(operands)}

	for i, raw := range operands {
		operand, err := parseOperand(raw)
		if err != nil {
			return tac.Instruction{}, err
		}

		ins.Operands[i] = operand
	}

	return ins, nil
}

// splitOperands splits a comma-separated operand list at top-level
// commas, i.e. commas that are not inside a quoted string or char
// literal.
func splitOperands(s string) []string {
	var (
		parts      []string
		depthStr   bool
		depthChar  bool
		start      int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if !depthChar {
				depthStr = !depthStr
			}
		case '\'':
			if !depthStr {
				depthChar = !depthChar
			}
		case ',':
			if !depthStr && !depthChar {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}

	parts = append(parts, strings.TrimSpace(s[start:]))

	return parts
}
