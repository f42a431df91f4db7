// internal/api/middleware.go
package api

import (
	"net/http"
	"time"

	"credit-risk-service/internal/common/logger"
	"credit-risk-service/internal/common/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogging logs every request with its outcome and duration.
func requestLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("request handled", map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}

// trackInFlight maintains the in-flight request gauge per path.
func trackInFlight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gauge := metrics.HTTPRequestsInFlight.WithLabelValues(r.URL.Path)
		gauge.Inc()
		defer gauge.Dec()
		next.ServeHTTP(w, r)
	})
}
