package httpserver

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/tlsedge-go/internal/server/httpserver/handler"
	"github.com/yndnr/tlsedge-go/internal/telemetry/logger"
	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
	"github.com/yndnr/tlsedge-go/pkg/cmap"
)

// maxRequestIDLen bounds client supplied X-Request-ID values.
const maxRequestIDLen = 64

// Middleware wraps an http.Handler with additional functionality.
type Middleware func(http.Handler) http.Handler

// Chain chains multiple middlewares together. The first middleware is
// the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RequestID adds a request ID to each request and stores a request-scoped
// logger built from base in the context. A client X-Request-ID of at most
// maxRequestIDLen printable ASCII characters is kept; otherwise a ULID is
// generated.
func RequestID(base *slog.Logger) Middleware {
	var l logger.Logger
	if base != nil {
		l = logger.FromSlog(base)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if !validRequestID(requestID) {
				requestID = ulid.Make().String()
			}

			w.Header().Set("X-Request-ID", requestID)

			ctx := logger.WithRequestID(r.Context(), requestID)
			if l != nil {
				ctx = logger.WithLogger(ctx, l)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// rateLimiterIdle is how long an unused per-IP limiter is kept.
const rateLimiterIdle = 3 * time.Minute

// RateLimit applies per-IP rate limiting with a token bucket of
// requestsPerSecond tokens.
func RateLimit(requestsPerSecond int) Middleware {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen atomic.Int64
	}

	var (
		limiters  = cmap.New[*entry]()
		lastSweep atomic.Int64
	)
	lastSweep.Store(time.Now().UnixNano())

	get := func(ip string, now time.Time) *rate.Limiter {
		last := lastSweep.Load()
		if now.Sub(time.Unix(0, last)) > rateLimiterIdle && lastSweep.CompareAndSwap(last, now.UnixNano()) {
			limiters.DeleteFunc(func(_ string, e *entry) bool {
				return now.Sub(time.Unix(0, e.lastSeen.Load())) > rateLimiterIdle
			})
		}

		e := limiters.GetOrCreate(ip, func() *entry {
			return &entry{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)}
		})
		e.lastSeen.Store(now.UnixNano())
		return e.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			if !get(clientIP(r), now).AllowN(now, 1) {
				w.Header().Set("Retry-After", "1")
				writeError(w, r, http.StatusTooManyRequests, handler.CodeTooManyRequests, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Audit logs one access line per request through the request's logger.
func Audit() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"proto", r.Proto,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"client_ip", clientIP(r),
			}

			l := logger.L(r.Context())
			switch {
			case wrapped.statusCode >= 500:
				l.Error("request completed with error", attrs...)
			case wrapped.statusCode >= 400:
				l.Warn("request completed with client error", attrs...)
			default:
				l.Info("request completed", attrs...)
			}
		})
	}
}

// Instrument records request count and latency.
func Instrument(m *metric.Registry) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.RecordRequest(r.Method, strconv.Itoa(wrapped.statusCode))
			m.ObserveRequestDuration(r.Method, time.Since(start).Seconds())
		})
	}
}

// Recover recovers from panics and returns 500 error.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.L(r.Context()).Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
					)
					writeError(w, r, http.StatusInternalServerError, handler.CodeInternal, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// writeError writes a middleware error response in the handler envelope.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handler.NewErrorResponse(logger.RequestIDFromContext(r.Context()), code, message))
}

// clientIP returns the peer IP of the connection. Forwarding headers are
// ignored since the listener terminates TLS itself.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
