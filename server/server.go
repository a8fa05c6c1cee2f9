package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/middleware"
	"github.com/xy-planning-network/courier/http/resp"
	"github.com/xy-planning-network/courier/http/router"
	"github.com/xy-planning-network/courier/logger"
	"golang.org/x/sync/errgroup"
)

// A Server manages and exposes all components of a courier app to one another.
type Server struct {
	cfg   Config
	d     *resp.Responder
	extra []router.Route
	l     logger.Logger
	mws   []middleware.Adapter
	rt    *router.Router
	srv   *http.Server
	store files.Store

	ready        atomic.Bool
	shutdownErr  error
	shutdownOnce sync.Once
}

// New constructs a *Server from the provided options.
// Options supplied to New overwrite default configurations.
func New(opts ...Option) (*Server, error) {
	s := &Server{cfg: NewConfig()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %s", courier.ErrBadConfig, err)
		}
	}

	if err := s.cfg.Valid(); err != nil {
		return nil, err
	}

	if s.l == nil {
		s.l = defaultLogger(s.cfg)
	}

	if s.store == nil && s.cfg.StaticDir != "" {
		s.store = files.Dir(s.cfg.StaticDir)
		s.l.Debug(fmt.Sprintf("serving files from %s", s.cfg.StaticDir), nil)
	}

	if s.mws == nil {
		s.mws = defaultMiddlewares(s.cfg, s.l)
	}

	s.d = defaultResponder(s.cfg, s.l, s.store)
	s.rt = router.New(s.cfg.Env, s.d, middleware.LogRequest(s.l))
	s.routes(s.rt)

	if s.srv == nil {
		s.srv = defaultHTTPServer(s.cfg)
	}
	s.srv.Handler = s.rt

	return s, nil
}

func (s *Server) EmitLogger() logger.Logger      { return s.l }
func (s *Server) EmitResponder() *resp.Responder { return s.d }
func (s *Server) EmitRouter() *router.Router     { return s.rt }

// Guide begins the web server at Config.Addr.
//
// These, and (*Server).Shutdown, stop Guide:
//
//   - the end of ctx
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
func (s *Server) Guide(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("could not listen: %w", err)
	}

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx ends or Shutdown is called,
// shutting the web server down gracefully either way.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()

		s.l.Info(fmt.Sprintf("running web server at %s", ln.Addr()), nil)
		s.ready.Store(true)
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not serve: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// ServeHTTP responds to an HTTP request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.srv.Handler.ServeHTTP(w, r)
}

// Shutdown shuts down the web server,
// waiting up to Config.ShutdownTimeout for open requests to finish.
//
// Only the first call has any effect; later calls return its error.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		s.ready.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		s.l.Info("shutting down web server", nil)
		if err := s.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.shutdownErr = fmt.Errorf("could not shutdown: %w", err)
			return
		}

		s.l.Info("web server shutdown successfully", nil)
	})

	return s.shutdownErr
}
