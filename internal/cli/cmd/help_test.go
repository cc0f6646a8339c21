package cmd

import (
	"bytes"
	"context"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/smoynes/tacrunner/internal/cli"
	"github.com/smoynes/tacrunner/internal/log"
)

type stubCommand struct{ name string }

func (s stubCommand) Description() string { return "stub command" }
func (s stubCommand) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet(s.name, flag.ContinueOnError)
}
func (s stubCommand) Usage(out io.Writer) error {
	_, err := io.WriteString(out, s.name+" <arg>\n")
	return err
}
func (s stubCommand) Run(context.Context, []string, io.Writer, *log.Logger) int { return 0 }

func TestHelp_UsageListsEveryCommand(t *testing.T) {
	h := Help([]cli.Command{stubCommand{name: "run"}})

	var buf bytes.Buffer
	if err := h.Usage(&buf); err != nil {
		t.Fatalf("Usage: %v", err)
	}

	out := buf.String()

	if !strings.Contains(out, "run") {
		t.Errorf("usage = %q, want it to mention the run command", out)
	}

	if !strings.Contains(out, "help") {
		t.Errorf("usage = %q, want it to mention the help command itself", out)
	}
}

func TestHelp_RunWithKnownCommandPrintsItsHelp(t *testing.T) {
	h := Help([]cli.Command{stubCommand{name: "run"}})

	var buf bytes.Buffer
	code := h.Run(context.Background(), []string{"run"}, &buf, nil)

	if code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}

	if !strings.Contains(buf.String(), "run <arg>") {
		t.Errorf("output = %q, want the stub command's usage text", buf.String())
	}
}

func TestHelp_RunWithNoArgsPrintsGeneralUsage(t *testing.T) {
	h := Help([]cli.Command{stubCommand{name: "run"}})

	var buf bytes.Buffer
	code := h.Run(context.Background(), nil, &buf, nil)

	if code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}

	if !strings.Contains(buf.String(), "tac-runner executes a three-address-code program") {
		t.Errorf("output = %q, want the general usage banner", buf.String())
	}
}
