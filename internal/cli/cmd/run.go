package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/smoynes/tacrunner/internal/cli"
	"github.com/smoynes/tacrunner/internal/log"
	"github.com/smoynes/tacrunner/internal/parser"
	"github.com/smoynes/tacrunner/internal/tty"
	"github.com/smoynes/tacrunner/internal/vm"
)

// Runner builds the "run" command: parse a TAC source file, execute it,
// and print the state-dump report (spec.md §6).
func Runner() cli.Command {
	return &runner{log: log.DefaultLogger()}
}

type runner struct {
	log *log.Logger

	quiet         bool
	callstack     bool
	memory        bool
	registers     bool
	labels        bool
	stackMemBytes uint
}

func (runner) Description() string {
	return "parse and execute a TAC program"
}

func (runner) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run <file> [--quiet] [--callstack] [--memory]
                [--registers] [--labels] [--stack-mem-bytes N]

Parses a three-address-code source file and executes it.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.BoolVar(&r.quiet, "quiet", false, "suppress the state-dump report")
	fs.BoolVar(&r.callstack, "callstack", false, "include the callstack trace in the report")
	fs.BoolVar(&r.memory, "memory", false, "include per-region memory summaries in the report")
	fs.BoolVar(&r.registers, "registers", false, "include per-frame register dumps in the report")
	fs.BoolVar(&r.labels, "labels", false, "include the label table in the report")
	fs.UintVar(&r.stackMemBytes, "stack-mem-bytes", 0, "number of stack bytes to hex-dump with --memory")

	return fs
}

// Run loads args[0] as a TAC source file, executes it, and reports the
// outcome as a process exit code: 0 on success, non-zero on parse
// failure, construction failure, or VM ERROR (spec.md §6).
func (r *runner) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if len(args) == 0 {
		logger.Error("run: missing program file")
		return 1
	}

	// Options may also follow the program file, as Usage shows.
	if len(args) > 1 {
		if err := r.FlagSet().Parse(args[1:]); err != nil {
			logger.Error("run: parse error", "err", err)
			return 1
		}
	}

	file, err := os.Open(args[0])
	if err != nil {
		logger.Error("run: cannot open program", "file", args[0], "err", err)
		return 1
	}
	defer file.Close()

	program, err := parser.Parse(file)
	if err != nil {
		logger.Error("run: parse error", "err", err)
		return 1
	}

	log.Trace(logger, "parsed program", "instructions", len(program))

	machine, err := vm.New(program, vm.WithLogger(logger))
	if err != nil {
		logger.Error("run: construction failed", "err", err)
		r.report(out, machine)

		return 1
	}

	if err := machine.Run(ctx); err != nil {
		logger.Error("run: execution fault", "err", err)
		r.report(out, machine)

		return 2
	}

	log.Success(logger, "program finished", "exit", machine.ExitCode)
	r.report(out, machine)

	if machine.ExitCode != 0 {
		return int(machine.ExitCode)
	}

	return 0
}

func (r *runner) report(out io.Writer, machine *vm.VM) {
	if r.quiet {
		return
	}

	machine.Report(out, vm.ReportOptions{
		Registers:     r.registers,
		Labels:        r.labels,
		Callstack:     r.callstack,
		Memory:        r.memory,
		StackMemBytes: uint32(r.stackMemBytes),
		Color:         tty.IsTerminal(os.Stdout),
	})
}
