package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/medcost/internal/observability"
)

const (
	traceIDHeader   = "X-Trace-Id"
	requestIDHeader = "X-Request-Id"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Trace injects trace, span and request IDs into every request and logs its
// outcome. A caller-supplied X-Request-Id is kept when it is a valid UUID.
func Trace() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			started := time.Now()

			traceID := observability.GenerateTraceID()
			ctx = observability.WithTraceID(ctx, traceID)
			ctx = observability.WithSpanID(ctx, observability.GenerateSpanID())

			requestID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = observability.GenerateRequestID()
			}
			ctx = observability.WithRequestID(ctx, requestID)

			w.Header().Set(traceIDHeader, traceID)
			w.Header().Set(requestIDHeader, requestID)

			logger := observability.FromContext(ctx)
			logger.Debug("request started",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.String("remote_addr", r.RemoteAddr),
			)

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r.WithContext(ctx))

			logger.Info("request completed",
				observability.String("method", r.Method),
				observability.String("path", r.URL.Path),
				observability.Int("status", recorder.status),
				observability.Any("duration", time.Since(started)),
			)
		})
	}
}
