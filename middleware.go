package effectlog

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-Id"
	defaultMaxBodySize = 1024
)

// HTTPLoggerConfig is the static configuration of an HTTPLogger. The
// zero value logs request and response lines without headers or bodies.
type HTTPLoggerConfig struct {
	// IncludeHeaders adds the request headers to the request line.
	IncludeHeaders bool
	// IncludeBody adds the (capped) request body to the request line.
	IncludeBody bool
	// MaxBodySize caps the logged body in bytes; zero means 1024.
	MaxBodySize int `validate:"gte=0"`
	// ExcludePaths suppresses request and response logging for paths
	// matching exactly or by prefix (health checks, metrics endpoints).
	ExcludePaths []string
	// DisableRequestLog suppresses the "HTTP request" line.
	DisableRequestLog bool
	// DisableResponseLog suppresses the "HTTP response" line.
	DisableResponseLog bool
}

// RequestInfo is the normalized request descriptor supplied by a
// framework shim.
type RequestInfo struct {
	Method     string
	Path       string
	Query      string
	Headers    map[string]string
	RemoteAddr string
	Body       []byte
}

// ResponseInfo is the normalized response descriptor.
type ResponseInfo struct {
	StatusCode int
}

// RequestScope is what Begin hands back for the shim to stash in its
// framework's per-request storage.
type RequestScope struct {
	// Logger is the request-scoped logger, enriched with the request
	// identifier and request metadata.
	Logger Logger
	// RequestID is the propagated or generated request identifier.
	RequestID string
	// Start is the captured request start time.
	Start time.Time

	excluded bool
}

// HTTPLogger is the framework-agnostic request/response logging
// adapter. It holds no per-request state; shims call Begin before the
// handler and End after it.
type HTTPLogger struct {
	logger Logger
	cfg    HTTPLoggerConfig
}

// NewHTTPLogger creates the adapter around a base logger.
func NewHTTPLogger(logger Logger, cfg HTTPLoggerConfig) (*HTTPLogger, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = defaultMaxBodySize
	}
	return &HTTPLogger{logger: logger, cfg: cfg}, nil
}

// Begin derives a request-scoped logger, captures the start time and
// emits the "HTTP request" line. Excluded paths produce the scope
// without any logging. A write failure is returned alongside a fully
// usable scope.
func (h *HTTPLogger) Begin(req RequestInfo) (RequestScope, error) {
	method := req.Method
	if method == emptyString {
		method = "UNKNOWN"
	}
	path := req.Path
	if path == emptyString {
		path = "/"
	}

	requestID := headerValue(req.Headers, requestIDHeader)
	if requestID == emptyString {
		requestID = uuid.NewString()
	}

	fields := []Field{
		String("request_id", requestID),
		String("http_method", method),
		String("http_path", path),
	}
	if req.RemoteAddr != emptyString {
		fields = append(fields, String("remote_addr", req.RemoteAddr))
	}
	if req.Query != emptyString {
		fields = append(fields, String("http_query", req.Query))
	}

	scope := RequestScope{
		Logger:    h.logger.WithContext(fields...),
		RequestID: requestID,
		Start:     time.Now(),
		excluded:  h.isExcluded(path),
	}
	if scope.excluded || h.cfg.DisableRequestLog {
		return scope, nil
	}

	var extra []Field
	if h.cfg.IncludeHeaders && len(req.Headers) > 0 {
		extra = append(extra, Any("headers", req.Headers))
	}
	if h.cfg.IncludeBody && len(req.Body) > 0 {
		extra = append(extra, String("body", h.renderBody(req.Body)))
	}

	return scope, scope.Logger.Info("HTTP request", extra...)
}

// End emits the "HTTP response" line for a scope produced by Begin.
// The severity follows the status code: 5xx is ERROR, 4xx is WARN,
// everything else INFO.
func (h *HTTPLogger) End(scope RequestScope, resp ResponseInfo, elapsed time.Duration) error {
	if scope.excluded || h.cfg.DisableResponseLog {
		return nil
	}

	level := LevelInfo
	switch {
	case resp.StatusCode >= 500:
		level = LevelError
	case resp.StatusCode >= 400:
		level = LevelWarn
	}

	return scope.Logger.Log(level, "HTTP response",
		Int("http_status", resp.StatusCode),
		Duration("duration_ms", elapsed),
	)
}

func (h *HTTPLogger) isExcluded(path string) bool {
	for _, p := range h.cfg.ExcludePaths {
		if path == p || strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func (h *HTTPLogger) renderBody(body []byte) string {
	if !utf8.Valid(body) {
		return "<binary data>"
	}
	if len(body) > h.cfg.MaxBodySize {
		return string(body[:h.cfg.MaxBodySize]) + "..."
	}
	return string(body)
}

// headerValue looks a header up case-insensitively.
func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return emptyString
}

// NewRequestInfo normalizes a net/http request. The body is not read;
// shims that want body logging must capture it themselves and set
// RequestInfo.Body.
func NewRequestInfo(r *http.Request) RequestInfo {
	headers := make(map[string]string, len(r.Header))
	for k, vals := range r.Header {
		if len(vals) > 0 {
			headers[k] = vals[0]
		}
	}
	return RequestInfo{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      r.URL.RawQuery,
		Headers:    headers,
		RemoteAddr: r.RemoteAddr,
	}
}

type ctxKey int8

const (
	ctxKeyLogger ctxKey = iota
	ctxKeyRequestID
)

// ContextWithLogger stores a request-scoped logger in ctx.
func ContextWithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, l)
}

// LoggerFromContext retrieves the request-scoped logger stored by the
// middleware.
func LoggerFromContext(ctx context.Context) (Logger, bool) {
	l, ok := ctx.Value(ctxKeyLogger).(Logger)
	return l, ok
}

// RequestIDFromContext retrieves the request identifier stored by the
// middleware.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyRequestID).(string)
	return id, ok
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware wraps a net/http handler with request/response logging.
// The request-scoped logger and request identifier are placed on the
// request context; the request identifier is echoed on the response.
// Log write failures never fail the request.
func (h *HTTPLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope, _ := h.Begin(NewRequestInfo(r))

		ctx := ContextWithLogger(r.Context(), scope.Logger)
		ctx = context.WithValue(ctx, ctxKeyRequestID, scope.RequestID)
		w.Header().Set(requestIDHeader, scope.RequestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		_ = h.End(scope, ResponseInfo{StatusCode: rec.status}, time.Since(scope.Start))
	})
}
