package vm

import (
	"bytes"
	"context"
	"testing"

	"github.com/smoynes/tacrunner/internal/log"
	"github.com/smoynes/tacrunner/internal/parser"
	"github.com/smoynes/tacrunner/internal/tac"
)

// testHarness bundles the plumbing every execution test needs: a
// buffered logger (so warnings/traces don't spam test output) and a
// helper to build and run a VM from TAC source text.
type testHarness struct {
	*testing.T
	logBuf *bytes.Buffer
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	return &testHarness{T: t, logBuf: new(bytes.Buffer)}
}

func (h *testHarness) logger() *log.Logger {
	return log.New(h.logBuf)
}

// program parses src (TAC source text) into a Program, failing the test
// on any syntax error.
func (h *testHarness) program(src string) tac.Program {
	h.Helper()

	prog, err := parser.Parse(bytes.NewBufferString(src))
	if err != nil {
		h.Fatalf("parse error: %v", err)
	}

	return prog
}

// run parses and executes src to completion, with stdout captured, and
// returns the machine and its captured program output.
func (h *testHarness) run(src string, opts ...OptionFn) (*VM, string) {
	h.Helper()

	var stdout bytes.Buffer

	allOpts := append([]OptionFn{WithLogger(h.logger()), WithStdout(&stdout)}, opts...)

	machine, err := New(h.program(src), allOpts...)
	if err != nil {
		h.Fatalf("construction error: %v", err)
	}

	_ = machine.Run(context.Background())

	return machine, stdout.String()
}
