// Package middleware wraps the router with request ids, access logging and
// the admin Basic-Auth gate.
package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/wellbeing-site/internal/metrics"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestID keeps an incoming X-Request-ID or generates one, echoes it on
// the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging logs each request once it completes and records its latency.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		metrics.RequestDuration.
			WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(rec.status)).
			Observe(duration.Seconds())

		slog.Info("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", duration.Milliseconds()),
			slog.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}

var knownRoutes = map[string]bool{
	"/":              true,
	"/api/register":  true,
	"/api/contact":   true,
	"/api/score":     true,
	"/api/send-mail": true,
	"/admin":         true,
	"/health":        true,
	"/metrics":       true,
}

// routeLabel keeps metric cardinality bounded: static files and unknown
// paths share a label.
func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	if strings.HasPrefix(path, "/api/") {
		return "unknown"
	}
	return "static"
}

// BasicAuth guards next with a single static credential pair. Missing or
// wrong credentials get a 401 with a WWW-Authenticate challenge.
func BasicAuth(user, pass string, next http.Handler) http.Handler {
	wantUser := sha256.Sum256([]byte(user))
	wantPass := sha256.Sum256([]byte(pass))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if ok {
			gotUser := sha256.Sum256([]byte(u))
			gotPass := sha256.Sum256([]byte(p))
			userMatch := subtle.ConstantTimeCompare(gotUser[:], wantUser[:]) == 1
			passMatch := subtle.ConstantTimeCompare(gotPass[:], wantPass[:]) == 1
			if userMatch && passMatch {
				next.ServeHTTP(w, r)
				return
			}
			slog.Warn("admin authentication failed",
				slog.String("remote", r.RemoteAddr),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="Admin", charset="UTF-8"`)
		http.Error(w, "Authentication required", http.StatusUnauthorized)
	})
}
