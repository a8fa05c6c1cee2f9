package server

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/middleware"
	"github.com/xy-planning-network/courier/http/router"
	"github.com/xy-planning-network/courier/logger"
)

// An Option configures a *Server under construction.
// Options run in the order passed to New,
// before any default fills in what they left unset.
type Option func(s *Server) error

// WithConfig replaces the Config read from environment variables.
func WithConfig(cfg Config) Option {
	return func(s *Server) error {
		s.cfg = cfg
		return nil
	}
}

// WithHTTPServer serves requests with srv.
// srv.Handler is overwritten with the *Server's router.
func WithHTTPServer(srv *http.Server) Option {
	return func(s *Server) error {
		if srv == nil {
			return fmt.Errorf("nil *http.Server")
		}

		s.srv = srv
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the courier app.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) error {
		if l == nil {
			return fmt.Errorf("nil logger.Logger")
		}

		s.l = l
		return nil
	}
}

// WithMiddlewares replaces the default stack of middleware.Adapter applied to every route.
func WithMiddlewares(mws ...middleware.Adapter) Option {
	return func(s *Server) error {
		s.mws = append(make([]middleware.Adapter, 0, len(mws)), mws...)
		return nil
	}
}

// WithRoutes registers routes alongside the file route.
func WithRoutes(routes ...router.Route) Option {
	return func(s *Server) error {
		s.extra = append(s.extra, routes...)
		return nil
	}
}

// WithStore serves files from store instead of Config.StaticDir.
func WithStore(store files.Store) Option {
	return func(s *Server) error {
		if store == nil {
			return fmt.Errorf("nil files.Store")
		}

		s.store = store
		return nil
	}
}
