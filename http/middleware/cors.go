package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allow" style headers on a response for requests from base.
//
// The headers range requests depend on are allowed and exposed,
// so browsers on another origin can seek through media.
//
// If base is empty, NoopAdapter returns and this middleware does nothing.
func CORS(base string) Adapter {
	if base == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type",
			"Range",
			"If-Range",
		}),
		handlers.AllowedOrigins([]string{base}),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		}),
		handlers.ExposedHeaders([]string{
			"Accept-Ranges",
			"Content-Length",
			"Content-Range",
		}),
	)
}
