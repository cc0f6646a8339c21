package vm

import (
	"fmt"
	"io"
	"sort"

	"github.com/smoynes/tacrunner/internal/dump"
)

// ReportOptions selects which optional sections the state-dump report
// includes, mirroring the CLI flags of spec.md §6.
type ReportOptions struct {
	Registers     bool
	Labels        bool
	Callstack     bool
	Memory        bool
	StackMemBytes uint32

	// Color enables ANSI coloring of the status/fault lines. Callers
	// should set this from tty.IsTerminal on the destination stream;
	// Report itself never inspects w to decide.
	Color bool
}

// Report prints the multi-section state-dump described in spec.md §6:
// PC/FP/SP, the current instruction (or a finished marker), machine
// status and exit code, then whichever optional sections opts selects.
// The exact text is not a stable contract, only the fields it contains.
func (vm *VM) Report(w io.Writer, opts ReportOptions) {
	fmt.Fprintf(w, "pc=%d fp=%#08x sp=%#08x\n", vm.PC, vm.FP, vm.SP)

	if vm.PC >= 0 && vm.PC < len(vm.Program) {
		fmt.Fprintf(w, "instruction: %s\n", vm.Program[vm.PC])
	} else {
		fmt.Fprintln(w, "instruction: <Program Finished>")
	}

	fmt.Fprintf(w, "status: %s\n", colorize(opts.Color, statusColor(vm.State), vm.State.String()))
	fmt.Fprintf(w, "exit code: %d\n", vm.ExitCode)

	if vm.LastErr != nil {
		fmt.Fprintf(w, "fault: %s\n", colorize(opts.Color, "31", vm.LastErr.Error()))
	}

	if opts.Registers {
		vm.reportRegisters(w)
	}

	if opts.Labels {
		vm.reportLabels(w)
	}

	if opts.Callstack {
		vm.reportCallstack(w)
	}

	if opts.Memory {
		vm.reportMemory(w, opts.StackMemBytes)
	}
}

// statusColor picks the ANSI code for a State the same way internal/log
// picks one per slog.Level: error states red, a finished run green,
// everything else left uncolored.
func statusColor(s State) string {
	switch s {
	case ErrorState:
		return "31"
	case Finished:
		return "32"
	default:
		return ""
	}
}

func colorize(enabled bool, code, text string) string {
	if !enabled || code == "" {
		return text
	}

	return "\x1b[" + code + "m" + text + "\x1b[0m"
}

func (vm *VM) reportRegisters(w io.Writer) {
	fmt.Fprintln(w, "registers:")

	for _, f := range vm.Regs.Frames() {
		fmt.Fprintf(w, "  frame %s (entry fp=%#08x):\n", f.FunctionName, f.EntryFP)

		names := make([]string, 0, len(f.Regs))
		for name := range f.Regs {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			fmt.Fprintf(w, "    %s = %#08x\n", name, f.Regs[name])
		}
	}
}

func (vm *VM) reportLabels(w io.Writer) {
	fmt.Fprintln(w, "labels:")

	names := vm.Labels.Names()
	sort.Strings(names)

	for _, name := range names {
		idx, _ := vm.Labels.Resolve(name)
		fmt.Fprintf(w, "  %s -> %d\n", name, idx)
	}
}

func (vm *VM) reportCallstack(w io.Writer) {
	fmt.Fprintln(w, "callstack:")

	for i := len(vm.backups) - 1; i >= 0; i-- {
		b := vm.backups[i]
		fmt.Fprintf(w, "  #%d return-pc=%d sp=%#08x fp=%#08x dest=%s\n", i, b.SavedPC, b.SavedSP, b.SavedFP, b.Dest)
	}
}

func (vm *VM) reportMemory(w io.Writer, stackBytes uint32) {
	fmt.Fprintln(w, "memory:")

	for _, s := range vm.Mem.Summaries() {
		fmt.Fprintf(w, "  %s base=%#08x size=%d used=%d chunks=%d\n", s.Region, s.Base, s.Size, s.Used, s.ChunkSize)
	}

	if stackBytes > 0 {
		fmt.Fprintln(w, "  stack dump:")
		fmt.Fprint(w, dump.Hex(vm.Mem.StackBase(), vm.Mem.StackSlice(stackBytes)))
	}
}
