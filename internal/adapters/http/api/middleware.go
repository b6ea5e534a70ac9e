package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sisu/pkg/logger"
	"github.com/okian/sisu/pkg/metrics"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds client-supplied ids.
const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestIDMiddleware propagates the X-Request-ID header, generating a UUID
// when the client sent none. The id is stored in the request context and
// attached to every log line written with that context.
func RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		ctx = logger.WithFields(ctx, logger.String("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequestID returns the id stored by RequestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// InstrumentMiddleware records request metrics for endpoint and logs each
// request: 5xx at error, 4xx at warn, the rest at debug.
func InstrumentMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	log := logger.Named("http")
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		ms := float64(elapsed.Microseconds()) / 1000
		status := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, status)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, status, ms)

		fields := []logger.Field{
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", rec.status),
			logger.Int("bytes", rec.written),
			logger.Duration("elapsed", elapsed),
		}

		kind, severity := classifyStatus(rec.status)
		switch severity {
		case "":
			log.Debug(r.Context(), "request", fields...)
			return
		case "high":
			log.Error(r.Context(), "request failed", fields...)
		default:
			log.Warn(r.Context(), "request rejected", fields...)
		}
		metrics.RecordErrorByEndpoint(endpoint, r.Method, kind)
		metrics.RecordErrorByType(kind, severity)
		metrics.RecordErrorLatency("http", kind, ms)
	}
}

// classifyStatus maps a status to the error code written by writeError and a
// severity. Successful statuses have an empty severity.
func classifyStatus(status int) (kind, severity string) {
	switch {
	case status >= http.StatusInternalServerError:
		return "internal_error", "high"
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		return "not_found", "medium"
	case status == http.StatusRequestEntityTooLarge:
		return "too_large", "medium"
	case status >= http.StatusBadRequest:
		return "bad_request", "medium"
	default:
		return "", ""
	}
}

// statusRecorder captures the status code and body size.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}
