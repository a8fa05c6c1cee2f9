package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/courier"
)

// ReportPanic encloses the env and returns an Adapter
// that wraps handlers in sentryhttp.Handler
// in order to recover and report panics.
//
// In development, panics are left alone.
func ReportPanic(env courier.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					panicRecoveries.Inc()
					panic(err)
				}
			}()

			h.ServeHTTP(w, r)
		}))
	}
}
