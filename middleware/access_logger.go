package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
	"github.com/dandoon/sample-webapp/userctx"
)

// AccessLogger times every request and records it in the capped access log.
// app names the sub-app ("www", "admin", "api") the router belongs to.
func AccessLogger(logService services.LogService, app string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			// The auth middleware runs inside this one; the identity holder
			// carries the signed-in user back out
			ctx, ident := userctx.WithIdentity(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			entry := &models.AccessLogEntry{
				Timestamp:  start,
				App:        app,
				Method:     r.Method,
				URL:        r.URL.RequestURI(),
				Status:     ww.Status(),
				DurationMs: float64(time.Since(start).Microseconds()) / 1000,
				IP:         getIPAddress(r),
				UserAgent:  r.UserAgent(),
				UserEmail:  ident.Email,
			}
			if entry.Status == 0 {
				entry.Status = http.StatusOK
			}

			// Log asynchronously to avoid blocking the request
			go func() {
				if err := logService.Record(context.Background(), entry); err != nil {
					log.Printf("Failed to record access log: %v", err)
				}
			}()
		})
	}
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	// Fall back to RemoteAddr
	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
