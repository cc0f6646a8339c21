// Package tac defines the instruction and operand model that the parser
// produces and the VM consumes: a flat, fully-typed three-address-code
// program (spec.md §3, §4.1).
package tac

// Opcode identifies the operation an Instruction performs.
type Opcode uint8

const (
	opUnknown Opcode = iota

	// Meta.
	StaticV
	StringLit
	Label
	FunctionBegin
	FunctionEnd

	// Data movement.
	AssignW
	AssignB

	// Arithmetic.
	Add
	Sub
	Mult
	Div
	Mod
	Minus
	Neg

	// Relational.
	Eq
	Neq
	Lt
	Leq
	Gt
	Geq

	// Logical.
	And
	Or

	// Control flow.
	Goto
	Goif
	Goifnot

	// Memory.
	Malloc
	Memcpy
	Free

	// Procedure.
	Param
	Call
	Return
	Exit

	// I/O.
	Printi
	Printf
	Print
	Printc
	Readi
	Readf
	Read
	Readc

	// Conversion.
	Ftoi
	Itof
)

// names maps an Opcode to its canonical source spelling, used both by the
// parser's operator table and by String() for diagnostics.
var names = map[Opcode]string{
	StaticV:       "@staticv",
	StringLit:     "@string",
	Label:         "@label",
	FunctionBegin: "@function_begin",
	FunctionEnd:   "@function_end",

	AssignW: "assignw",
	AssignB: "assignb",

	Add:   "add",
	Sub:   "sub",
	Mult:  "mult",
	Div:   "div",
	Mod:   "mod",
	Minus: "minus",
	Neg:   "neg",

	Eq:  "eq",
	Neq: "neq",
	Lt:  "lt",
	Leq: "leq",
	Gt:  "gt",
	Geq: "geq",

	And: "and",
	Or:  "or",

	Goto:     "goto",
	Goif:     "goif",
	Goifnot:  "goifnot",

	Malloc: "malloc",
	Memcpy: "memcpy",
	Free:   "free",

	Param:  "param",
	Call:   "call",
	Return: "return",
	Exit:   "exit",

	Printi: "printi",
	Printf: "printf",
	Print:  "print",
	Printc: "printc",
	Readi:  "readi",
	Readf:  "readf",
	Read:   "read",
	Readc:  "readc",

	Ftoi: "ftoi",
	Itof: "itof",
}

// Opcodes maps a source spelling back to its Opcode, for the parser's
// operator table.
var Opcodes = func() map[string]Opcode {
	m := make(map[string]Opcode, len(names))
	for op, name := range names {
		m[name] = op
	}

	return m
}()

func (op Opcode) String() string {
	if name, ok := names[op]; ok {
		return name
	}

	return "unknown"
}

// Arity is the number of operands each opcode expects. -1 means variadic
// (not used currently; every TAC opcode here has a fixed arity).
var arity = map[Opcode]int{
	StaticV:       2,
	StringLit:     2,
	Label:         1,
	FunctionBegin: 2,
	FunctionEnd:   0,

	AssignW: 2,
	AssignB: 2,

	Add:   3,
	Sub:   3,
	Mult:  3,
	Div:   3,
	Mod:   3,
	Minus: 2,
	Neg:   2,

	Eq:  3,
	Neq: 3,
	Lt:  3,
	Leq: 3,
	Gt:  3,
	Geq: 3,

	And: 3,
	Or:  3,

	Goto:    1,
	Goif:    2,
	Goifnot: 2,

	Malloc: 2,
	Memcpy: 3,
	Free:   1,

	Param:  2,
	Call:   2,
	Return: 1,
	Exit:   1,

	Printi: 1,
	Printf: 1,
	Print:  1,
	Printc: 1,
	Readi:  1,
	Readf:  1,
	Read:   1,
	Readc:  1,

	Ftoi: 2,
	Itof: 2,
}

// Arity returns the number of operands op expects.
func (op Opcode) Arity() int {
	return arity[op]
}
