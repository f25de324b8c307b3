package effectlog

// Op is a pure Logger transformation, the unit of Pipe composition.
type Op func(Logger) Logger

// WithContext returns an operation adding fields to a logger's context.
func WithContext(fields ...Field) Op {
	return func(l Logger) Logger {
		return l.WithContext(fields...)
	}
}

// WithSpan returns an operation setting span and trace identifiers. An
// empty traceID retains the logger's previous trace identifier.
func WithSpan(spanID, traceID string) Op {
	return func(l Logger) Logger {
		return l.WithSpan(spanID, traceID)
	}
}

// WithWriter returns an operation replacing a logger's writer.
func WithWriter(w Writer) Op {
	return func(l Logger) Logger {
		return l.WithWriter(w)
	}
}

// WithMinLevel returns an operation replacing a logger's threshold.
func WithMinLevel(level Level) Op {
	return func(l Logger) Logger {
		return l.WithMinLevel(level)
	}
}

// ForkLogger returns a logger with identical configuration. Since
// Logger is an immutable value no copy is required; the function exists
// as an explicit way to request a logically independent handle.
func ForkLogger(l Logger) Logger {
	return l
}

// MergeLoggers combines two loggers: the context is a.Context() merged
// with b.Context() (b wins on conflicting keys), and the writer and
// threshold are taken from b.
func MergeLoggers(a, b Logger) Logger {
	return Logger{
		writer:   b.writer,
		context:  a.context.Merge(b.context),
		minLevel: b.minLevel,
	}
}
