package chi

import (
	"net/http"

	"github.com/go-chi/httprate"
)

// RateLimitByIP limits requests per client IP. A zero budget returns a no-op middleware.
func RateLimitByIP(rl RateLimit) func(http.Handler) http.Handler {
	if rl.Requests <= 0 || rl.Window <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		rl.Requests,
		rl.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
		}),
	)
}
