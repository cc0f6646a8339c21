package tac

import "fmt"

// Kind tags the variant held by an Operand.
type Kind uint8

const (
	KindBool Kind = iota
	KindChar
	KindInt32
	KindFloat32
	KindString
	KindVarRef
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	case KindString:
		return "string"
	case KindVarRef:
		return "varref"
	default:
		return "invalid"
	}
}

// IndexKind tags the variant held by an Index.
type IndexKind uint8

const (
	IndexNone IndexKind = iota
	IndexConst
	IndexName
)

// Index is the optional `[expr]` suffix of a variable reference: either
// absent, a literal integer, or another variable's name (spec.md §3).
type Index struct {
	Kind  IndexKind
	Const int32
	Name  string
}

func (ix Index) String() string {
	switch ix.Kind {
	case IndexConst:
		return fmt.Sprintf("%d", ix.Const)
	case IndexName:
		return ix.Name
	default:
		return ""
	}
}

// VarRef is `name` or `name[index]`. Without the index it denotes a
// register; with it, IsAccess is true and it denotes the memory address
// register[name] + index (spec.md GLOSSARY).
type VarRef struct {
	Name     string
	Index    Index
	IsAccess bool
}

func (v VarRef) String() string {
	if !v.IsAccess {
		return v.Name
	}

	return fmt.Sprintf("%s[%s]", v.Name, v.Index.String())
}

// Operand is a tagged union over the six literal/reference shapes a TAC
// operand may take (spec.md §3).
type Operand struct {
	Kind Kind

	Bool    bool
	Char    byte
	Int32   int32
	Float32 float32
	Str     string
	Var     VarRef
}

func (o Operand) String() string {
	switch o.Kind {
	case KindBool:
		return fmt.Sprintf("%t", o.Bool)
	case KindChar:
		return fmt.Sprintf("%q", rune(o.Char))
	case KindInt32:
		return fmt.Sprintf("%d", o.Int32)
	case KindFloat32:
		return fmt.Sprintf("%g", o.Float32)
	case KindString:
		return fmt.Sprintf("%q", o.Str)
	case KindVarRef:
		return o.Var.String()
	default:
		return "<invalid>"
	}
}

// IsVar reports whether the operand is a variable reference (register or
// memory access) rather than a literal.
func (o Operand) IsVar() bool {
	return o.Kind == KindVarRef
}

// Constructors used by the parser.

func Bool(b bool) Operand       { return Operand{Kind: KindBool, Bool: b} }
func Char(c byte) Operand       { return Operand{Kind: KindChar, Char: c} }
func Int32(i int32) Operand     { return Operand{Kind: KindInt32, Int32: i} }
func Float32(f float32) Operand { return Operand{Kind: KindFloat32, Float32: f} }
func String(s string) Operand   { return Operand{Kind: KindString, Str: s} }

func Reg(name string) Operand {
	return Operand{Kind: KindVarRef, Var: VarRef{Name: name}}
}

func Access(name string, index Index) Operand {
	return Operand{Kind: KindVarRef, Var: VarRef{Name: name, Index: index, IsAccess: true}}
}
