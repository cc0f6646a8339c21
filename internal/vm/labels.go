package vm

import "github.com/smoynes/tacrunner/internal/tac"

// labels.go is the pre-scan pass: every @label and @function_begin name
// is mapped to its instruction index once, at construction, so that
// branches and calls are O(1) lookups at run time instead of a linear
// scan for the target on every jump (spec.md §4.4, design notes
// "Pre-scan vs lazy label resolution"). This plays the same role as the
// teacher's loader building a symbol table before execution
// (internal/vm/loader.go), just over label names instead of object-code
// origins.
type Labels struct {
	index map[string]int
}

// scanLabels builds the label index, or returns ErrDuplicateLabel if a
// name is defined twice — label names and function-entry names share one
// namespace (spec.md §3 invariants).
func scanLabels(program tac.Program) (*Labels, error) {
	index := make(map[string]int, len(program))

	for i, ins := range program {
		var name string

		switch ins.Op {
		case tac.Label, tac.FunctionBegin:
			name = ins.Operand(0).Var.Name
		default:
			continue
		}

		if _, exists := index[name]; exists {
			return nil, faultName(ErrDuplicateLabel, name)
		}

		index[name] = i
	}

	return &Labels{index: index}, nil
}

// Resolve returns the instruction index a label or function name maps
// to.
func (l *Labels) Resolve(name string) (int, bool) {
	i, ok := l.index[name]

	return i, ok
}

// Names returns every known label/function name, for the --labels report
// section. Order is unspecified.
func (l *Labels) Names() []string {
	names := make([]string, 0, len(l.index))
	for name := range l.index {
		names = append(names, name)
	}

	return names
}
