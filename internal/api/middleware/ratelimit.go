package middleware

import (
	"net/http"
	"time"

	"github.com/mesafacil/reservas/internal/api/apierr"
	"github.com/mesafacil/reservas/internal/middleware"
)

// RateLimit rejects clients over their limit with a JSON 429
func RateLimit(limiter *middleware.RateLimiter) func(http.Handler) http.Handler {
	return middleware.RateLimit(limiter, func(w http.ResponseWriter, _ *http.Request, _ time.Duration) {
		apierr.WriteError(w, apierr.NewRateLimitedError())
	})
}

// RateLimiter re-exports the shared per-key limiter
type RateLimiter = middleware.RateLimiter

// NewRateLimiter creates a limiter allowing rps requests per second per client
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return middleware.NewRateLimiter(rps, burst)
}
