package effectlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures a FileWriter.
type FileConfig struct {
	// Path is the log file location. Missing parent directories are
	// created at construction time.
	Path string `validate:"required"`
	// Truncate opens the file truncated instead of appending.
	Truncate bool
	// MinLevel gates entries below it.
	MinLevel Level
}

// FileWriter appends one JSON line per entry to a file. Each write goes
// straight to the file handle with no internal buffering; wrap in a
// BufferedWriter for batching. Concurrent writers to the same FileWriter
// are serialized so lines never interleave.
type FileWriter struct {
	mu       sync.Mutex
	f        *os.File
	path     string
	minLevel Level
	closed   atomic.Bool
}

// NewFileWriter opens the target file per cfg. Invalid configuration,
// directory creation and open failures are construction errors.
func NewFileWriter(cfg FileConfig) (*FileWriter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(cfg.Path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileWriter{f: f, path: cfg.Path, minLevel: cfg.MinLevel}, nil
}

// Write implements Writer.
func (w *FileWriter) Write(e Entry) error {
	if e.Level < w.minLevel {
		return nil
	}
	if w.closed.Load() {
		return writeFailure("file", errors.New(errMsgWriterClosed))
	}
	line, err := appendJSONLine(e)
	if err != nil {
		return writeFailure("file", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.f.Write(line); err != nil {
		return writeFailure("file", fmt.Errorf("%s: %w", w.path, err))
	}
	return nil
}

// Close closes the underlying file. It is safe to call Close multiple
// times.
func (w *FileWriter) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

// RotatingFileConfig configures a RotatingFileWriter.
type RotatingFileConfig struct {
	Path string `validate:"required"`
	// MaxSizeMB is the size that triggers rotation. Zero keeps the
	// lumberjack default.
	MaxSizeMB  int `validate:"gte=0"`
	MaxBackups int `validate:"gte=0"`
	MaxAgeDays int `validate:"gte=0"`
	MinLevel   Level
}

// RotatingFileWriter is a FileWriter variant with size/age based
// rotation backed by lumberjack.
type RotatingFileWriter struct {
	mu       sync.Mutex
	lj       *lumberjack.Logger
	minLevel Level
}

// NewRotatingFileWriter creates a rotating file writer.
func NewRotatingFileWriter(cfg RotatingFileConfig) (*RotatingFileWriter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &RotatingFileWriter{
		lj: &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		},
		minLevel: cfg.MinLevel,
	}, nil
}

// Write implements Writer.
func (w *RotatingFileWriter) Write(e Entry) error {
	if e.Level < w.minLevel {
		return nil
	}
	line, err := appendJSONLine(e)
	if err != nil {
		return writeFailure("rotating_file", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.lj.Write(line); err != nil {
		return writeFailure("rotating_file", err)
	}
	return nil
}

// Close closes the underlying rotating log file.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lj.Close()
}
