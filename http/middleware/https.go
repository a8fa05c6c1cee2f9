package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/xy-planning-network/courier"
)

// ForceHTTPS answers plain HTTP requests outside development
// with a 308 Permanent Redirect to the same URL over HTTPS.
// Behind a proxy, "X-Forwarded-Proto" tells which scheme the client used.
//
// 308 keeps the method, so a player retrying a range request
// against the new location sends its Range header again.
// Requests for exempt paths, e.g., load balancer health checks, pass through.
func ForceHTTPS(env courier.Environment, exempt ...string) Adapter {
	skip := make(map[string]bool, len(exempt))
	for _, p := range exempt {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		if env.IsDevelopment() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHTTPS(r) || skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			target := url.URL{
				Scheme:   "https",
				Host:     r.Host,
				Path:     r.URL.Path,
				RawPath:  r.URL.RawPath,
				RawQuery: r.URL.RawQuery,
			}
			http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
		})
	}
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
