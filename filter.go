package effectlog

// FilterWriter wraps a writer with a boolean predicate over the entry,
// delegating only when the predicate admits it. A nil predicate admits
// everything. Predicate panics are programmer error in composition and
// propagate to the logging call site.
type FilterWriter struct {
	inner Writer
	pred  Predicate
}

// NewFilterWriter creates a predicate-gated writer.
func NewFilterWriter(inner Writer, pred Predicate) *FilterWriter {
	return &FilterWriter{inner: inner, pred: pred}
}

// Write implements Writer.
func (w *FilterWriter) Write(e Entry) error {
	if w.pred != nil && !w.pred(e) {
		return nil
	}
	return w.inner.Write(e)
}
