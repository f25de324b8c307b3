package effectlog

import "github.com/rs/zerolog"

// ZerologWriter routes entries into an existing zerolog logger so hosts
// already running a zerolog pipeline can consume effectlog output
// without a second sink. The entry timestamp, context fields and
// span/trace identifiers become zerolog fields; level filtering
// configured on the zerolog logger still applies.
type ZerologWriter struct {
	logger zerolog.Logger
}

// NewZerologWriter creates a zerolog bridge writer.
func NewZerologWriter(logger zerolog.Logger) *ZerologWriter {
	return &ZerologWriter{logger: logger}
}

func toZerologLevel(l Level) zerolog.Level {
	switch l {
	case LevelTrace:
		return zerolog.TraceLevel
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	case LevelFatal:
		// WithLevel does not terminate the process at FatalLevel.
		return zerolog.FatalLevel
	default:
		return zerolog.NoLevel
	}
}

// Write implements Writer. Zerolog swallows its own sink errors, so
// Write only fails for entries the bridge cannot express.
func (w *ZerologWriter) Write(e Entry) error {
	ev := w.logger.WithLevel(toZerologLevel(e.Level))
	if ev == nil {
		return nil
	}
	ev = ev.Time(zerolog.TimestampFieldName, e.Timestamp)
	for _, k := range e.Context.Keys() {
		v, _ := e.Context.Get(k)
		ev = ev.Interface(k, v)
	}
	if e.SpanID != emptyString {
		ev = ev.Str("span_id", e.SpanID)
	}
	if e.TraceID != emptyString {
		ev = ev.Str("trace_id", e.TraceID)
	}
	ev.Msg(e.Message)
	return nil
}
