package middleware

import (
	"net/http"
	"time"

	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/logger"
)

// LogRequest logs the method, path, status, bytes written and duration of every request
// using the enclosed implementation of logger.Logger.
// The Range header, IP address and request ID are included when present.
//
// LogRequest masks the value of the "token" query parameter.
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrap(w)
			h.ServeHTTP(sw, r)

			uri := r.URL.Path
			q := r.URL.Query()
			if q.Get("token") != "" {
				q.Set("token", "xxxxxx")
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			data := map[string]any{
				"bytes":    sw.size,
				"duration": time.Since(start).String(),
				"status":   sw.status,
			}

			if rng := r.Header.Get("Range"); rng != "" {
				data["range"] = rng
			}

			if ip, ok := r.Context().Value(courier.IpAddrKey).(string); ok {
				data["ip"] = ip
			}

			if id, ok := r.Context().Value(courier.RequestIDKey).(string); ok {
				data["requestID"] = id
			}

			ls.Info(r.Method+" "+uri, &logger.LogContext{Data: data})
		})
	}
}
