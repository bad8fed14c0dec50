package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dsablic/codecheck/internal/config"
)

const maxBurst = 100

// RateLimiter is a token bucket refilled by a ticker. Requests that find the
// bucket empty are rejected with 429 instead of queueing.
type RateLimiter struct {
	tokens   chan struct{}
	interval time.Duration
}

// NewRateLimiter allows reqPerSec requests per second, capped at
// config.MaxReqPerSec, with a burst of the same size up to maxBurst. The
// refill goroutine stops when ctx is done. reqPerSec <= 0 returns nil, which
// limits nothing.
func NewRateLimiter(ctx context.Context, reqPerSec float64) *RateLimiter {
	if reqPerSec <= 0 {
		return nil
	}
	reqPerSec = min(reqPerSec, config.MaxReqPerSec)
	burst := min(max(int(reqPerSec), 1), maxBurst)
	l := &RateLimiter{
		tokens:   make(chan struct{}, burst),
		interval: time.Duration(float64(time.Second) / reqPerSec),
	}
	for range burst {
		l.tokens <- struct{}{}
	}

	go func() {
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case l.tokens <- struct{}{}:
				default:
				}
			}
		}
	}()
	return l
}

// Allow takes a token if one is available.
func (l *RateLimiter) Allow() bool {
	if l == nil {
		return true
	}
	select {
	case <-l.tokens:
		return true
	default:
		return false
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			secs := max(int(l.interval.Round(time.Second)/time.Second), 1)
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			respondError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
