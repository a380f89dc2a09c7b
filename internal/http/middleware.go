package http

import (
	"net"
	"net/http"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	rl "github.com/mbachaalani/freshmarket-ai-platform/internal/http/rate_limiter"
)

// AuthMiddleware rejects requests without a valid bearer token. Handlers
// re-read the verified identity via auth.IdentityFromRequest.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.IdentityFromRequest(r); err != nil {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware throttles per client IP. It guards the AI routes,
// whose upstream calls are slow and metered.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
