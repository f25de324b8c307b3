package effectlog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// ColorMode controls ANSI coloring of the console writer.
type ColorMode int8

const (
	// ColorAuto enables color only when the stream is an interactive
	// terminal.
	ColorAuto ColorMode = iota
	// ColorAlways enables color unconditionally, skipping the
	// interactivity check.
	ColorAlways
	// ColorNever disables color.
	ColorNever
)

const (
	ansiReset   = "\x1b[0m"
	ansiDim     = "\x1b[2m"
	ansiYellow  = "\x1b[33m"
	ansiRed     = "\x1b[31m"
	ansiBoldRed = "\x1b[1;31m"
)

func levelColor(l Level) string {
	switch l {
	case LevelTrace, LevelDebug:
		return ansiDim
	case LevelWarn:
		return ansiYellow
	case LevelError:
		return ansiRed
	case LevelFatal:
		return ansiBoldRed
	default:
		return emptyString
	}
}

// ConsoleConfig configures a ConsoleWriter. The zero value writes
// uncolored-unless-interactive lines to stderr with no level gate.
type ConsoleConfig struct {
	// Stream is the destination, defaulting to os.Stderr.
	Stream io.Writer
	// MinLevel gates entries below it, independently of the Logger's
	// own threshold.
	MinLevel Level
	// Color selects the ANSI coloring mode.
	Color ColorMode
}

// ConsoleWriter renders one human-readable line per entry:
//
//	2023-01-01 12:00:00 INFO message key=value span=s trace=t
//
// Writes are mutex-serialized so concurrent callers never interleave
// partial lines.
type ConsoleWriter struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
	color    bool
}

// NewConsoleWriter creates a console writer. Color is resolved once at
// construction time.
func NewConsoleWriter(cfg ConsoleConfig) *ConsoleWriter {
	out := cfg.Stream
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleWriter{
		out:      out,
		minLevel: cfg.MinLevel,
		color:    resolveColor(cfg.Color, out),
	}
}

func resolveColor(mode ColorMode, out io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write implements Writer.
func (w *ConsoleWriter) Write(e Entry) error {
	if e.Level < w.minLevel {
		return nil
	}

	var b strings.Builder
	b.WriteString(e.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteByte(' ')
	if code := levelColor(e.Level); w.color && code != emptyString {
		b.WriteString(code)
		b.WriteString(e.Level.String())
		b.WriteString(ansiReset)
	} else {
		b.WriteString(e.Level.String())
	}
	b.WriteByte(' ')
	b.WriteString(e.Message)
	for _, k := range e.Context.Keys() {
		v, _ := e.Context.Get(k)
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	if e.SpanID != emptyString {
		b.WriteString(" span=")
		b.WriteString(e.SpanID)
	}
	if e.TraceID != emptyString {
		b.WriteString(" trace=")
		b.WriteString(e.TraceID)
	}
	b.WriteByte('\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := io.WriteString(w.out, b.String()); err != nil {
		return writeFailure("console", err)
	}
	return nil
}

// JSONConsoleConfig configures a JSONConsoleWriter. The zero value
// writes to stderr with no level gate.
type JSONConsoleConfig struct {
	Stream   io.Writer
	MinLevel Level
}

// JSONConsoleWriter emits one JSON object per line with the fixed keys
// timestamp, level, message, context, span_id and trace_id. A
// non-serializable context value surfaces as a WriteError instead of
// corrupting the output stream.
type JSONConsoleWriter struct {
	mu       sync.Mutex
	out      io.Writer
	minLevel Level
}

// NewJSONConsoleWriter creates a JSON console writer.
func NewJSONConsoleWriter(cfg JSONConsoleConfig) *JSONConsoleWriter {
	out := cfg.Stream
	if out == nil {
		out = os.Stderr
	}
	return &JSONConsoleWriter{out: out, minLevel: cfg.MinLevel}
}

// Write implements Writer.
func (w *JSONConsoleWriter) Write(e Entry) error {
	if e.Level < w.minLevel {
		return nil
	}
	line, err := appendJSONLine(e)
	if err != nil {
		return writeFailure("json_console", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.out.Write(line); err != nil {
		return writeFailure("json_console", err)
	}
	return nil
}
