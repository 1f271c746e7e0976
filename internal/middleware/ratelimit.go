package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	apierrors "hotelcomp/internal/errors"
)

// RateLimiter throttles the whole API with one token bucket
type RateLimiter struct {
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimiter allows rps requests per second with bursts of burst
func NewRateLimiter(rps float64, burst int, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Handler answers 429 with a Retry-After hint once the bucket is empty
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		retry := rl.retryAfter()
		rl.logger.WarnContext(ctx, "rate limit exceeded",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.Int("retry_after", retry),
		)

		w.Header().Set("Retry-After", strconv.Itoa(retry))
		problem := apierrors.NewProblemDetails(
			http.StatusTooManyRequests,
			apierrors.TypeRateLimit,
			"Too Many Requests",
			"Rate limit exceeded, please retry shortly",
			r.URL.Path,
		).WithExtension("retry_after", retry).
			WithExtension("trace_id", GetRequestID(ctx))
		_ = render.Render(w, r, problem)
	})
}

// retryAfter estimates the whole seconds until the next token, at least 1
func (rl *RateLimiter) retryAfter() int {
	res := rl.limiter.Reserve()
	defer res.Cancel()

	if !res.OK() {
		return 1
	}
	secs := int(math.Ceil(res.Delay().Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
