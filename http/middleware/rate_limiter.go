package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	visitorTTL    = time.Hour
	sweepInterval = time.Minute
)

// A Visitor is the limiter of one client IP and when the IP was last seen.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// Visitors holds one Visitor per client IP.
// Visitors idle longer than an hour are forgotten.
type Visitors struct {
	mu        sync.Mutex
	burst     int
	limit     rate.Limit
	lastSweep time.Time
	byIP      map[string]Visitor
}

// NewVisitors constructs a *Visitors allowing each IP limit requests a second,
// in bursts of up to burst.
//
// Media players issue many small range requests while seeking,
// so burst ought to be generous.
func NewVisitors(limit rate.Limit, burst int) *Visitors {
	return &Visitors{burst: burst, limit: limit, byIP: make(map[string]Visitor)}
}

// Fetch returns the Visitor for ip, marking it seen now.
func (vs *Visitors) Fetch(ip string) Visitor {
	now := time.Now().UTC()

	vs.mu.Lock()
	defer vs.mu.Unlock()

	if now.Sub(vs.lastSweep) >= sweepInterval {
		vs.sweep(now)
	}

	v, ok := vs.byIP[ip]
	if !ok {
		v.Limiter = rate.NewLimiter(vs.limit, vs.burst)
	}

	v.LastSeen = now
	vs.byIP[ip] = v
	return v
}

// Len is the number of IPs tracked.
func (vs *Visitors) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.byIP)
}

// sweep must be called with mu held.
func (vs *Visitors) sweep(now time.Time) {
	for ip, v := range vs.byIP {
		if now.Sub(v.LastSeen) > visitorTTL {
			delete(vs.byIP, ip)
		}
	}

	vs.lastSweep = now
}

// RateLimit answers 429 Too Many Requests to an IP over its limit,
// with a Retry-After estimated from its limiter.
func RateLimit(visitors *Visitors) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lim := visitors.Fetch(GetIPAddress(r)).Limiter
			if lim.Allow() {
				h.ServeHTTP(w, r)
				return
			}

			rateLimitRejects.Inc()
			if lim.Limit() > 0 {
				secs := int(1/float64(lim.Limit())) + 1
				w.Header().Set("Retry-After", strconv.Itoa(secs))
			}

			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		})
	}
}
