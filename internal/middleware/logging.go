package middleware

import (
	"net/http"
	"time"

	"kanban/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// statusRecorder remembers the first status code and counts body bytes.
// A zero status means nothing has been written yet.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status != 0 {
		return
	}
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.WriteHeader(http.StatusOK)
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) Flush() {
	if sr.status == 0 {
		sr.WriteHeader(http.StatusOK)
	}
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func (sr *statusRecorder) code() int {
	if sr.status == 0 {
		return http.StatusOK
	}
	return sr.status
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// routePattern is the chi pattern that served r, e.g. "/api/tasks/{id}",
// falling back to the raw path when no route matched. Only meaningful after
// the router has run.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// Logging writes an HTTP_IN entry when a request arrives and an HTTP_OUT
// entry when it completes, at warn level for 4xx and error level for 5xx.
// The completed entry and the active span are labelled with the route
// pattern so ids do not fan out into separate names.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestId := GetRequestID(r.Context())
		logger.HttpRequestInfo(r, "HTTP_IN: request started", zap.String("request_id", requestId))

		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		route := routePattern(r)
		status := rec.code()

		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.response.status_code", status),
		)

		logger.Log(levelForStatus(status), "HTTP_OUT: request completed",
			zap.String("request_id", requestId),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes_written", rec.bytes),
			zap.Duration("ms", time.Since(start)),
		)
	})
}
