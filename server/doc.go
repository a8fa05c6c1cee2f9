// Package server bootstraps a courier application: a web server answering file requests,
// whole or in part, through a [resp.Responder].
//
// [New] composes the pieces from a [Config] read from environment variables
// (and any .env file in the working directory), or a YAML file using [LoadConfig].
// Functional options passed to [New] overwrite the defaults.
//
//	s, err := server.New(server.WithRoutes(router.Route{
//		Path:    "/hello",
//		Method:  http.MethodGet,
//		Handler: func(rr *resp.Response) { rr.Text("hello") },
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := s.Guide(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// These environment variables configure a [*Server]:
//
//   - HOST, default "localhost"
//   - PORT, default "3000"
//   - ENVIRONMENT, default "DEVELOPMENT"
//   - LOG_LEVEL, default "INFO"
//   - READ_TIMEOUT, WRITE_TIMEOUT, IDLE_TIMEOUT and SHUTDOWN_TIMEOUT, as Go durations
//   - CORS_ORIGIN, the origin allowed to make cross-origin requests
//   - STATIC_DIR, default "public", the directory files are served from
//   - FILES_PREFIX, default "/files", the path files are served under
//   - CACHE_MAX_AGE, a Go duration sent in "Cache-Control"
//   - STRICT_RANGES, answering unsatisfiable ranges with 416 and "Content-Range: bytes */size"
//   - MAINTENANCE_MODE, answering every request with 503
//   - RATE_LIMIT and RATE_BURST, requests per second allowed from each IP address
package server
