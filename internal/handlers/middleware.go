package handlers

import (
	"net/http"
	"time"

	"gitlab.com/clawgames.net/internal/core/ports/primary"
	"gitlab.com/clawgames.net/internal/handlers/response"
)

type MiddlewareProvider struct {
	MaxBodyBytes int64
	logger       primary.Logger
}

func New(maxBodyBytes int64, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		MaxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// LimitBody caps the readable request body
func (m *MiddlewareProvider) LimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, m.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// Recover turns a handler panic into an opaque 500
func (m *MiddlewareProvider) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("Handler panicked", "path", r.URL.Path, "panic", rec)
				ResponseError(w, response.MsgInternal, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs method, path, status and latency. Bodies and credentials are
// never logged.
func (m *MiddlewareProvider) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"durationMs", time.Since(start).Milliseconds())
	})
}
