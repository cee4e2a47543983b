package prerouter

import (
	"net"
	"net/http"
	"net/netip"
	"time"

	"log/slog"

	"github.com/bhamail/bhamail/core"
)

const logMessage = "http_request"

// RemoteIP returns the normalized IP address from the request
func RemoteIP(r *http.Request) string {
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	parsed, err := netip.ParseAddr(ip)
	if err != nil {
		return ip // fallback to original if parsing fails
	}
	return parsed.StringExpanded()
}

// RequestLog is middleware that logs HTTP request details. Bodies and
// headers are never logged: this API's bodies carry passwords and tokens.
type RequestLog struct {
	app *core.App
}

// NewRequestLog creates a new request logging middleware instance
func NewRequestLog(app *core.App) *RequestLog {
	return &RequestLog{
		app: app,
	}
}

// responseRecorder wraps http.ResponseWriter to capture status code.
// Initialized to StatusOK (200) because handlers may write the body
// without ever calling WriteHeader.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Execute wraps the next handler with request logging
func (r *RequestLog) Execute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.app.Config().Log.Request {
			next.ServeHTTP(w, req)
			return
		}

		start := time.Now()
		rec := &responseRecorder{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(rec, req)

		r.app.Logger().LogAttrs(req.Context(), slog.LevelInfo, logMessage,
			slog.String("type", "request"),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", rec.status),
			slog.String("remote_ip", RemoteIP(req)),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
