/*
Package middleware holds the [Adapter]s courier wraps its handlers in.

[Chain] applies adapters so the first listed runs first:

	h := middleware.Chain(files,
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.RateLimit(middleware.NewVisitors(5, 20)),
	)

The server package builds its default stack from the same pieces,
adding CORS, ForceHTTPS and Metrics.
*/
package middleware
