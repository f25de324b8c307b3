package effectlog

import (
	"time"

	json "github.com/goccy/go-json"
)

// Entry is one fully-resolved record of a single logging call. It is
// produced exactly once per accepted call and never mutated afterwards,
// so it is safe to hand to multiple writers concurrently.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Context   Data
	SpanID    string
	TraceID   string
}

// jsonEntry is the fixed wire shape of a serialized entry.
type jsonEntry struct {
	Timestamp string  `json:"timestamp"`
	Level     string  `json:"level"`
	Message   string  `json:"message"`
	Context   Data    `json:"context"`
	SpanID    *string `json:"span_id"`
	TraceID   *string `json:"trace_id"`
}

// appendJSONLine serializes e as a single JSON line, including the
// trailing newline.
func appendJSONLine(e Entry) ([]byte, error) {
	je := jsonEntry{
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
		Level:     e.Level.String(),
		Message:   e.Message,
		Context:   e.Context,
	}
	if e.SpanID != emptyString {
		je.SpanID = &e.SpanID
	}
	if e.TraceID != emptyString {
		je.TraceID = &e.TraceID
	}
	b, err := json.Marshal(je)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
