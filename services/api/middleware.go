package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/natlasdev/natlas/pkg/logging"
)

// requestIDHeader is echoed back to the caller for correlation.
const requestIDHeader = "X-Request-ID"

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestID assigns each request a UUID, stored in the context for log
// correlation and echoed in the response header. An inbound X-Request-ID is
// honored so callers can chain their own IDs through.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), logging.RequestIDKey, id)
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument logs each request and records Prometheus counters and latency.
func instrument(log logging.Logger, metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(started)
			route := r.URL.Path

			metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			metrics.RequestSeconds.WithLabelValues(route).Observe(elapsed.Seconds())

			log.WithContext(r.Context()).Info("request handled",
				logging.F("method", r.Method),
				logging.F("route", route),
				logging.F("status", rec.status),
				logging.F("elapsed_ms", elapsed.Milliseconds()),
			)
		})
	}
}
