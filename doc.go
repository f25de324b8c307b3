// Package effectlog provides immutable, functional structured logging
// with composable writers.
//
// Key features
//   - Immutable Logger values: every With* method returns a new Logger,
//     so any goroutine may share a Logger without synchronization
//   - Ordered structured context with span/trace identifiers, merged
//     into every entry (call-site fields win on key collision)
//   - Pluggable Writer pipeline: console, JSON console, file, rotating
//     file, fan-out, predicate filter, buffered batching, zerolog bridge
//   - Functional composition via Pipe and curried WithContext/WithSpan/
//     WithWriter/WithMinLevel operations
//   - Framework-agnostic HTTP request/response logging with request-id
//     propagation and a ready-made net/http middleware
//
// Typical usage
//
//	logger := effectlog.New(nil).WithContext(effectlog.String("service", "api"))
//	_ = logger.Info("started", effectlog.Int("port", 8080))
//
//	reqLogger := logger.WithSpan("span-123", "trace-456")
//	if err := reqLogger.Error("failed", effectlog.Err(err)); err != nil {
//		// writer failures are surfaced, not swallowed
//	}
package effectlog
