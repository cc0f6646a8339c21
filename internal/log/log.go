// Package log provides the VM's diagnostic logger.
//
// Every diagnostic line the VM emits goes through a single handler that
// renders one line per record as:
//
//	tac-runner: [LEVEL] message key=value ...
//
// Program output (print, printi, printf, printc, ...) never goes through
// this package; it is written directly to stdout with its own
// "program: " prefix by the instructions that produce it.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Logger is the type every component logs through.
type Logger = slog.Logger

// LogLevel holds the current minimum level. It can be changed at runtime,
// e.g. raised above LevelError to silence diagnostics.
var LogLevel = &slog.LevelVar{}

// Custom levels. slog reserves -4, 0, 4, 8 for Debug/Info/Warn/Error; we
// slot Trace below Debug and Success between Info and Warn so existing
// level comparisons (">= LevelWarn means trouble") still hold.
const (
	LevelTrace   slog.Level = -8
	LevelSuccess slog.Level = 2
)

var levelNames = map[slog.Level]string{
	LevelTrace:   "TRACE",
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	LevelSuccess:    "SUCCESS",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
}

// DefaultLogger returns the process-wide logger, writing to stderr.
// Components should call this once at startup and hold onto the result;
// the default does not change at runtime (use LogLevel to change
// verbosity instead).
var DefaultLogger = sync.OnceValue(func() *Logger { return New(os.Stderr) })

// SetDefault installs logger as the slog package default.
var SetDefault = slog.SetDefault

// New creates a logger that writes tac-runner's one-line diagnostic
// format to out.
func New(out io.Writer) *Logger {
	return slog.New(NewHandler(out))
}

// Handler implements slog.Handler, rendering one colorized line per
// record.
type Handler struct {
	mut   *sync.Mutex
	out   io.Writer
	color bool
	opts  *slog.HandlerOptions
	attrs []slog.Attr
}

// Options configures the handler's level filter. It is a package var, in
// the same spirit as the teacher's log.Options, so callers can tighten or
// loosen it without re-creating the handler.
var Options = &slog.HandlerOptions{
	Level: LogLevel,
}

// NewHandler creates a Handler writing to out. Color is enabled
// automatically when out is a terminal.
func NewHandler(out io.Writer) *Handler {
	h := &Handler{
		out:  out,
		mut:  new(sync.Mutex),
		opts: Options,
	}

	if f, ok := out.(*os.File); ok {
		h.color = term.IsTerminal(int(f.Fd()))
	}

	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "tac-runner: [%s] %s", h.tag(rec.Level), rec.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, a)
	}

	rec.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, a)
		return true
	})

	b.WriteByte('\n')

	h.mut.Lock()
	defer h.mut.Unlock()

	_, err := io.WriteString(h.out, b.String())

	return err
}

func (h *Handler) writeAttr(b *strings.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	fmt.Fprintf(b, " %s=%v", a.Key, a.Value.Any())
}

func (h *Handler) tag(level slog.Level) string {
	name, ok := levelNames[level]
	if !ok {
		name = level.String()
	}

	if !h.color {
		return name
	}

	code, ok := levelColors[level]
	if !ok {
		return name
	}

	return "\x1b[" + code + "m" + name + "\x1b[0m"
}

var levelColors = map[slog.Level]string{
	LevelTrace:     "2",  // dim
	slog.LevelWarn:  "33", // yellow
	slog.LevelError: "31", // red
	LevelSuccess:    "32", // green
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	// Groups are flattened: tac-runner's one-line format has no nesting.
	return h
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)

	return &Handler{
		out:   h.out,
		mut:   h.mut,
		opts:  h.opts,
		color: h.color,
		attrs: merged,
	}
}
