package server

import (
	"net/http"

	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/middleware"
	"github.com/xy-planning-network/courier/http/resp"
	"github.com/xy-planning-network/courier/http/router"
	"github.com/xy-planning-network/courier/logger"
	"golang.org/x/time/rate"
)

// defaultLogger constructs the logger.Logger used throughout the courier app.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(logger.WithEnv(cfg.Env), logger.WithLevel(cfg.Level()))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultMiddlewares constructs the stack applied to every route,
// outermost first.
func defaultMiddlewares(cfg Config, l logger.Logger) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.Metrics(),
		middleware.RateLimit(middleware.NewVisitors(rate.Limit(cfg.RateLimit), cfg.RateBurst)),
		middleware.ForceHTTPS(cfg.Env, "/health", "/ready"),
		middleware.CORS(cfg.CORSOrigin),
	}
}

// defaultResponder configures the *resp.Responder handlers respond through.
func defaultResponder(cfg Config, l logger.Logger, store files.Store) *resp.Responder {
	opts := []resp.ResponderOptFn{resp.WithLogger(l)}
	if store != nil {
		opts = append(opts, resp.WithStore(store))
	}

	if cfg.StrictRanges {
		opts = append(opts, resp.WithStrictRanges())
	}

	return resp.NewResponder(opts...)
}

// defaultHTTPServer constructs a default *http.Server.
func defaultHTTPServer(cfg Config) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// handleMaintenance answers every request with 503 Service Unavailable,
// asking clients to come back later.
func (s *Server) handleMaintenance(rr *resp.Response) {
	if err := rr.SetStatus(http.StatusServiceUnavailable); err != nil {
		s.d.Err(rr, err)
		return
	}

	if err := rr.SetHeader("Retry-After", maintRetryAfterSecs); err != nil {
		s.d.Err(rr, err)
		return
	}

	rr.Text(http.StatusText(http.StatusServiceUnavailable))
}

// routes registers every route of the courier app on rt.
//
// The health, readiness and metrics routes skip the middleware stack.
func (s *Server) routes(rt *router.Router) {
	rt.Metrics("/metrics")
	rt.Handle(router.Route{Path: "/health", Method: http.MethodGet, Handler: s.handleHealth})
	rt.Handle(router.Route{Path: "/ready", Method: http.MethodGet, Handler: s.handleReady})

	rt.OnEveryRequest(s.mws...)
	if s.cfg.Maintenance {
		rt.CatchAll(s.handleMaintenance)
		return
	}

	if s.store != nil && s.cfg.FilesPrefix != "" {
		rt.Files(s.cfg.FilesPrefix, s.cfg.CacheMaxAge)
	}

	rt.HandleRoutes(s.extra)
}

func (s *Server) handleHealth(rr *resp.Response) {
	s.status(rr, http.StatusOK, "ok")
}

func (s *Server) handleReady(rr *resp.Response) {
	if !s.ready.Load() {
		s.status(rr, http.StatusServiceUnavailable, "not ready")
		return
	}

	s.status(rr, http.StatusOK, "ready")
}

// status responds with code and {"status": msg}.
func (s *Server) status(rr *resp.Response, code int, msg string) {
	if err := rr.SetStatus(code); err != nil {
		s.d.Err(rr, err)
		return
	}

	if _, err := rr.Json(map[string]string{"status": msg}); err != nil {
		s.d.Err(rr, err)
	}
}
