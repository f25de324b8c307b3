package effectlog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureWriter records every entry it receives. Safe for concurrent use.
type captureWriter struct {
	mu      sync.Mutex
	entries []Entry
}

func (w *captureWriter) Write(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, e)
	return nil
}

func (w *captureWriter) Entries() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w *captureWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

// failingWriter always fails with its configured error.
type failingWriter struct {
	err error
}

func (w *failingWriter) Write(Entry) error {
	return w.err
}

func TestNewLogger(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		logger := New(nil)
		assert.NotNil(t, logger.Writer())
		assert.Equal(t, LevelInfo, logger.MinLevel())
		assert.Equal(t, 0, logger.Context().Data().Len())
	})

	t.Run("custom writer", func(t *testing.T) {
		w := &captureWriter{}
		logger := New(w)
		assert.Same(t, w, logger.Writer())
	})
}

func TestLoggerLevelFiltering(t *testing.T) {
	t.Run("default INFO threshold", func(t *testing.T) {
		w := &captureWriter{}
		logger := New(w)

		require.NoError(t, logger.Trace("trace message"))
		require.NoError(t, logger.Debug("debug message"))
		require.NoError(t, logger.Info("info message"))
		require.NoError(t, logger.Warn("warn message"))
		require.NoError(t, logger.Error("error message"))
		require.NoError(t, logger.Fatal("fatal message"))

		assert.Equal(t, 4, w.Count())
	})

	t.Run("WARN threshold", func(t *testing.T) {
		w := &captureWriter{}
		logger := New(w).WithMinLevel(LevelWarn)

		_ = logger.Trace("trace")
		_ = logger.Debug("debug")
		_ = logger.Info("info")
		_ = logger.Warn("warn")
		_ = logger.Error("error")

		entries := w.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, LevelWarn, entries[0].Level)
		assert.Equal(t, LevelError, entries[1].Level)
	})

	t.Run("dropped calls never reach the writer", func(t *testing.T) {
		w := &captureWriter{}
		logger := New(w).WithMinLevel(LevelWarn)
		require.NoError(t, logger.Info("noop"))
		assert.Equal(t, 0, w.Count())
	})

	t.Run("gating monotonicity", func(t *testing.T) {
		w := &captureWriter{}
		logger := New(w).WithMinLevel(LevelError)

		for _, level := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn} {
			_ = logger.Log(level, "below")
		}
		assert.Equal(t, 0, w.Count())

		for _, level := range []Level{LevelError, LevelFatal} {
			_ = logger.Log(level, "admitted")
		}
		assert.Equal(t, 2, w.Count())
	})
}

func TestLoggerEntryContents(t *testing.T) {
	w := &captureWriter{}
	logger := New(w).WithContext(String("service", "api"))

	before := time.Now()
	require.NoError(t, logger.Info("test message", String("user_id", "123"), String("action", "create")))
	after := time.Now()

	entries := w.Entries()
	require.Len(t, entries, 1)
	e := entries[0]

	assert.Equal(t, "test message", e.Message)
	assert.Equal(t, LevelInfo, e.Level)
	assert.False(t, e.Timestamp.Before(before))
	assert.False(t, e.Timestamp.After(after))

	v, _ := e.Context.Get("service")
	assert.Equal(t, "api", v)
	v, _ = e.Context.Get("user_id")
	assert.Equal(t, "123", v)
	v, _ = e.Context.Get("action")
	assert.Equal(t, "create", v)
}

func TestLoggerContextPrecedence(t *testing.T) {
	w := &captureWriter{}
	logger := New(w).
		WithContext(Int("x", 1)).
		WithContext(Int("x", 2))

	t.Run("last with-context wins", func(t *testing.T) {
		require.NoError(t, logger.Info("msg"))
		v, _ := w.Entries()[0].Context.Get("x")
		assert.Equal(t, 2, v)
	})

	t.Run("call-site field wins over ambient context", func(t *testing.T) {
		require.NoError(t, logger.Info("msg", Int("x", 3)))
		entries := w.Entries()
		v, _ := entries[len(entries)-1].Context.Get("x")
		assert.Equal(t, 3, v)
	})
}

func TestLoggerImmutability(t *testing.T) {
	w := &captureWriter{}
	logger1 := New(w)
	logger2 := logger1.WithContext(String("key", "value"))
	logger3 := logger2.WithSpan("span-123", "")
	logger4 := logger3.WithMinLevel(LevelDebug)

	// Originals are unchanged by every derivation
	assert.Equal(t, 0, logger1.Context().Data().Len())
	assert.Equal(t, emptyString, logger1.Context().SpanID())
	assert.Equal(t, LevelInfo, logger1.MinLevel())

	assert.Equal(t, 1, logger2.Context().Data().Len())
	assert.Equal(t, emptyString, logger2.Context().SpanID())

	assert.Equal(t, "span-123", logger3.Context().SpanID())
	assert.Equal(t, LevelInfo, logger3.MinLevel())

	assert.Equal(t, LevelDebug, logger4.MinLevel())
	assert.Same(t, w, logger4.Writer())
}

func TestLoggerWithSpan(t *testing.T) {
	w := &captureWriter{}
	logger := New(w).WithSpan("span-123", "trace-456")

	require.NoError(t, logger.Info("spanned"))
	e := w.Entries()[0]
	assert.Equal(t, "span-123", e.SpanID)
	assert.Equal(t, "trace-456", e.TraceID)
}

func TestLoggerWithWriter(t *testing.T) {
	first := &captureWriter{}
	second := &captureWriter{}

	logger := New(first)
	replaced := logger.WithWriter(second)

	require.NoError(t, replaced.Info("routed"))
	assert.Equal(t, 0, first.Count())
	assert.Equal(t, 1, second.Count())
}

func TestLoggerPipe(t *testing.T) {
	w := &captureWriter{}
	logger := New(nil).Pipe(
		WithWriter(w),
		WithContext(String("service", "api"), String("version", "1.0")),
		WithSpan("span-123", ""),
		WithMinLevel(LevelDebug),
	)

	assert.Same(t, w, logger.Writer())
	v, _ := logger.Context().Data().Get("service")
	assert.Equal(t, "api", v)
	assert.Equal(t, "span-123", logger.Context().SpanID())
	assert.Equal(t, LevelDebug, logger.MinLevel())

	t.Run("left-to-right application", func(t *testing.T) {
		piped := New(w).Pipe(
			WithMinLevel(LevelDebug),
			WithMinLevel(LevelError),
		)
		assert.Equal(t, LevelError, piped.MinLevel())
	})
}

func TestLoggerSurfacesWriterFailure(t *testing.T) {
	sentinel := errors.New("disk full")
	logger := New(&failingWriter{err: sentinel})

	err := logger.Info("doomed")
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestZeroValueLoggerDoesNotPanic(t *testing.T) {
	var logger Logger

	require.NoError(t, logger.Info("test"))
	require.NoError(t, logger.Error("test", String("key", "value")))
	require.NoError(t, logger.WithContext(String("k", "v")).Warn("test"))
	require.NoError(t, logger.Dump(struct{ A int }{A: 1}))
}

func TestLoggerConcurrentUse(t *testing.T) {
	w := &captureWriter{}
	logger := New(w).WithContext(String("service", "api"))

	const goroutines = 100
	const iterations = 50

	done := make(chan bool, goroutines)

	for i := 0; i < goroutines; i++ {
		go func(id int) {
			scoped := logger.WithContext(Int("goroutine_id", id))
			for j := 0; j < iterations; j++ {
				_ = scoped.Info("concurrent log", Int("iteration", j))
			}
			done <- true
		}(i)
	}

	for i := 0; i < goroutines; i++ {
		<-done
	}

	assert.Equal(t, goroutines*iterations, w.Count())
}
