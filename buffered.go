package effectlog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/atomic"
)

// BufferedWriter accumulates entries and drains them to the inner
// writer in FIFO order once the buffer reaches capacity, or on an
// explicit Flush. Durability is best effort: entries still buffered
// when the process exits without a Flush or Close are lost.
//
// Concurrent Write calls are mutually exclusive, and a flush is atomic
// with respect to concurrent appends: no entry is both flushed and
// retained, and none is dropped.
type BufferedWriter struct {
	mu       sync.Mutex
	inner    Writer
	capacity int
	entries  []Entry
	flushed  atomic.Int64
}

// NewBufferedWriter creates a buffered writer draining into inner once
// capacity entries have accumulated. A nil inner writer or a capacity
// below 1 is a configuration error.
func NewBufferedWriter(inner Writer, capacity int) (*BufferedWriter, error) {
	if inner == nil {
		return nil, errors.New(errMsgNilInnerWriter)
	}
	if capacity < 1 {
		return nil, errors.New(errMsgBadCapacity)
	}
	return &BufferedWriter{
		inner:    inner,
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}, nil
}

// Write implements Writer. Reaching capacity triggers an automatic
// flush, whose failures are returned from this call.
func (w *BufferedWriter) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries = append(w.entries, e)
	if len(w.entries) >= w.capacity {
		return w.flushLocked()
	}
	return nil
}

// Flush drains all buffered entries to the inner writer in original
// write order. Call it before shutdown; unflushed entries are otherwise
// lost.
func (w *BufferedWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

// flushLocked drains the buffer one entry at a time. A failing entry
// does not stop the remaining ones from draining; failures aggregate.
// The buffer is empty when it returns.
func (w *BufferedWriter) flushLocked() error {
	var errs *multierror.Error
	for i, e := range w.entries {
		if err := w.inner.Write(e); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	w.flushed.Add(int64(len(w.entries)))
	w.entries = w.entries[:0]
	return errs.ErrorOrNil()
}

// Close flushes the remaining entries.
func (w *BufferedWriter) Close() error {
	return w.Flush()
}

// Len returns the number of currently buffered entries.
func (w *BufferedWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// Flushed returns the total number of entries drained to the inner
// writer over the writer's lifetime.
func (w *BufferedWriter) Flushed() int64 {
	return w.flushed.Load()
}
