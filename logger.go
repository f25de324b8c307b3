package effectlog

import "time"

// Logger is an immutable façade over a writer, an ambient context and a
// minimum severity threshold. Every transformation method returns a new
// Logger and leaves the receiver untouched, so a Logger value can be
// shared across goroutines without synchronization.
//
// The zero value Logger{} is a safe no-op.
type Logger struct {
	writer   Writer
	context  Context
	minLevel Level
}

// New creates a Logger with the given writer, an empty context and an
// INFO threshold. A nil writer defaults to a console writer on stderr.
func New(w Writer) Logger {
	if w == nil {
		w = NewConsoleWriter(ConsoleConfig{})
	}
	return Logger{writer: w, minLevel: LevelInfo}
}

// Writer returns the logger's writer.
func (l Logger) Writer() Writer { return l.writer }

// Context returns the logger's ambient context.
func (l Logger) Context() Context { return l.context }

// MinLevel returns the logger's severity threshold.
func (l Logger) MinLevel() Level { return l.minLevel }

// Log emits one entry at the given level. Calls below the threshold are
// dropped before the entry is built, so filtered messages never pay for
// context merging or serialization. Writer failures are returned to the
// caller: resilience policy belongs to the host, not the core.
func (l Logger) Log(level Level, msg string, fields ...Field) error {
	if level < l.minLevel {
		return nil
	}
	if l.writer == nil {
		return nil
	}
	ctx := l.context.WithData(fields...)
	return l.writer.Write(Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   msg,
		Context:   ctx.Data(),
		SpanID:    ctx.SpanID(),
		TraceID:   ctx.TraceID(),
	})
}

// Trace logs at LevelTrace.
func (l Logger) Trace(msg string, fields ...Field) error {
	return l.Log(LevelTrace, msg, fields...)
}

// Debug logs at LevelDebug.
func (l Logger) Debug(msg string, fields ...Field) error {
	return l.Log(LevelDebug, msg, fields...)
}

// Info logs at LevelInfo.
func (l Logger) Info(msg string, fields ...Field) error {
	return l.Log(LevelInfo, msg, fields...)
}

// Warn logs at LevelWarn.
func (l Logger) Warn(msg string, fields ...Field) error {
	return l.Log(LevelWarn, msg, fields...)
}

// Error logs at LevelError.
func (l Logger) Error(msg string, fields ...Field) error {
	return l.Log(LevelError, msg, fields...)
}

// Fatal logs at LevelFatal. It does not terminate the process; exit
// policy belongs to the caller.
func (l Logger) Fatal(msg string, fields ...Field) error {
	return l.Log(LevelFatal, msg, fields...)
}

// WithContext returns a new Logger whose context carries the additional
// fields. Writer and threshold are shared with the receiver.
func (l Logger) WithContext(fields ...Field) Logger {
	out := l
	out.context = l.context.WithData(fields...)
	return out
}

// WithSpan returns a new Logger with the span identifier set. An empty
// traceID retains the previous trace identifier.
func (l Logger) WithSpan(spanID, traceID string) Logger {
	out := l
	out.context = l.context.WithSpan(spanID, traceID)
	return out
}

// WithWriter returns a new Logger writing to w.
func (l Logger) WithWriter(w Writer) Logger {
	out := l
	out.writer = w
	return out
}

// WithMinLevel returns a new Logger with the given threshold.
func (l Logger) WithMinLevel(level Level) Logger {
	out := l
	out.minLevel = level
	return out
}

// Pipe applies the operations left to right:
// l.Pipe(f, g, h) == h(g(f(l))). Operations must be pure with respect
// to their Logger argument.
func (l Logger) Pipe(ops ...Op) Logger {
	out := l
	for _, op := range ops {
		out = op(out)
	}
	return out
}
