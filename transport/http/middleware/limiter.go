package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/transport/http/response"
)

// RateLimit caps requests per client address over the configured window.
// A limiter outage lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable || a.limiter == nil {
				next.ServeHTTP(w, r)

				return
			}

			result, err := a.limiter.Allow(r.Context(), a.getClientIP(r))
			if err != nil {
				log.Warn().Err(err).Msg("request rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(result.Limit))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, result.Limit-result.Count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(a.config.App.RateLimiter.WindowSeconds))

			if !result.Allowed {
				response.WithError(w, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded, result.RetryAfter))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For may list several hops, the client is the first
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
