package effectlog

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// MultiWriter fans an entry out to an ordered sequence of child
// writers. It applies no level gate of its own; gating belongs to the
// children. A failing child never prevents later children from running:
// independent sinks must not take each other down. All child failures
// are collected into one aggregate error naming the children that
// failed.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a fan-out writer over the given children.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write implements Writer.
func (w *MultiWriter) Write(e Entry) error {
	var errs *multierror.Error
	for i, child := range w.writers {
		if err := child.Write(e); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("writer %d: %w", i, err))
		}
	}
	return errs.ErrorOrNil()
}
