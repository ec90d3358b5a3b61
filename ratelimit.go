package endpoints

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate    float64                                      // requests per second
	Burst   int                                          // max burst
	KeyFunc func(r *http.Request) string                 // default: remote IP
	OnLimit func(w http.ResponseWriter, r *http.Request) // default: 429 response
	MaxIdle time.Duration                                // drop limiters idle longer than this (default: 5m)
}

// RateLimit returns middleware that applies per-key rate limiting. Limiter
// state lives in the middleware value, so a group-level RateLimit is scoped
// to that group's routes and never shared across groups.
func RateLimit(cfg RateLimitConfig) Middleware {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(r *http.Request) string {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				return r.RemoteAddr
			}
			return host
		}
	}
	if cfg.OnLimit == nil {
		cfg.OnLimit = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5 * time.Minute
	}

	type entry struct {
		limiter *rate.Limiter
		seen    time.Time
	}

	var (
		mu        sync.Mutex
		limiters  = make(map[string]*entry)
		lastPrune = time.Now()
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := cfg.KeyFunc(r)
			now := time.Now()

			mu.Lock()
			e, ok := limiters[key]
			if !ok {
				e = &entry{limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst)}
				limiters[key] = e
			}
			e.seen = now

			// Prune idle limiters opportunistically, at most once per MaxIdle.
			if now.Sub(lastPrune) > cfg.MaxIdle {
				for k, v := range limiters {
					if now.Sub(v.seen) > cfg.MaxIdle {
						delete(limiters, k)
					}
				}
				lastPrune = now
			}
			mu.Unlock()

			if !e.limiter.Allow() {
				cfg.OnLimit(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
