package effectlog

// Writer is the sink capability: consume one entry, perform a side
// effect, report failure. Implementations must not mutate the entry.
//
// Writer is the sole extension point for new output targets; composite
// writers (Multi, Filter, Buffered) hold and delegate to inner Writers.
type Writer interface {
	Write(e Entry) error
}

// Predicate decides whether a FilterWriter forwards an entry. It must
// be pure and side-effect free.
type Predicate func(e Entry) bool

// WriteError is the failure raised by a writer during Write: an I/O
// error or a serialization error, attributed to the writer that failed.
type WriteError struct {
	Writer string
	Err    error
}

func (e *WriteError) Error() string {
	return e.Writer + " writer: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func writeFailure(writer string, err error) error {
	return &WriteError{Writer: writer, Err: err}
}
