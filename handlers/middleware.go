package handlers

import (
	"context"
	"net/http"
	"time"

	"personalsite/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey struct{}

// statusRecorder remembers the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id, stores a logger carrying it
// in the request context and logs the request when it completes.
func RequestLogger(log *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		reqLog := log.With("request_id", id)
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, reqLog))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		reqLog.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"ip", utils.GetIP(r),
			"user_agent", utils.GetUserAgent(r),
		)
	})
}

// Recover turns a panic in a handler into a 500.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				loggerFrom(r.Context(), nil).Errorw("panic serving request", "panic", p, "path", r.URL.Path)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func loggerFrom(ctx context.Context, fallback *zap.SugaredLogger) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop().Sugar()
}
