package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/middleware"
	"github.com/xy-planning-network/courier/http/resp"
)

// FileParam names the path parameter holding the file requested from a route mounted by Files.
const FileParam = "name"

// A Route maps a path and HTTP method to a [resp.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     resp.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests for resources to their handlers.
type Router struct {
	env           courier.Environment
	d             *resp.Responder
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	r             *mux.Router
}

// New constructs a [*Router] for the given environment.
// Every handler the *Router registers is adapted through d.
//
// logReq wraps handlers for unmatched requests, which skip the stack set by OnEveryRequest.
// A nil logReq is replaced with [middleware.NoopAdapter].
func New(env courier.Environment, d *resp.Responder, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	rt := &Router{env: env, d: d, logReq: logReq, r: mux.NewRouter()}
	rt.HandleNotFound(nil)
	rt.HandleMethodNotAllowed(nil)

	return rt
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler resp.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.env)(r.d.Handle(handler)),
			r.everyReqStack...,
		),
	)
}

// Files registers a route serving files from the [*resp.Responder]'s store
// under prefix, e.g., "/files/clip.mp4" for prefix "/files".
//
// Range requests are answered with partial content.
// A positive maxAge sets "Cache-Control: max-age" on files served;
// error responses go without it.
func (r *Router) Files(prefix string, maxAge time.Duration, middlewares ...middleware.Adapter) {
	r.Handle(Route{
		Path:        strings.TrimSuffix(prefix, "/") + "/{" + FileParam + ":.+}",
		Method:      http.MethodGet,
		Handler:     r.serveFile(maxAge),
		Middlewares: middlewares,
	})
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleMethodNotAllowed sets the provided [resp.HandlerFunc] as the function
// for when a registered Route matches a request's path but not its method.
//
// A nil handler responds with 405.
func (r *Router) HandleMethodNotAllowed(handler resp.HandlerFunc) {
	if handler == nil {
		handler = func(rr *resp.Response) { rr.Error(http.StatusMethodNotAllowed) }
	}

	r.r.MethodNotAllowedHandler = middleware.Chain(
		middleware.ReportPanic(r.env)(r.d.Handle(handler)),
		r.logReq,
	)
}

// HandleNotFound sets the provided [resp.HandlerFunc] as the default function
// for when no other registered Route is matched.
//
// A nil handler responds with 404.
func (r *Router) HandleNotFound(handler resp.HandlerFunc) {
	if handler == nil {
		handler = func(rr *resp.Response) { rr.Error(http.StatusNotFound) }
	}

	r.r.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.env)(r.d.Handle(handler)),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// Routes handling GET handle HEAD as well.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := append([]middleware.Adapter{}, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		methods := []string{route.Method}
		if route.Method == http.MethodGet {
			methods = append(methods, http.MethodHead)
		}

		handler := middleware.Chain(middleware.ReportPanic(r.env)(r.d.Handle(route.Handler)), mws...)
		r.r.Handle(route.Path, handler).Methods(methods...)
	}
}

// Metrics exposes the metrics gathered by the default Prometheus registry at path.
func (r *Router) Metrics(path string) {
	r.r.Handle(path, promhttp.Handler()).Methods(http.MethodGet)
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
//
// Only Routes registered afterwards apply the stack.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/media") handles requests to endpoints like /media/clip.mp4
func (r *Router) Subrouter(prefix string) *Router {
	return &Router{
		env:           r.env,
		d:             r.d,
		r:             r.r.PathPrefix(prefix).Subrouter(),
		logReq:        r.logReq,
		everyReqStack: append([]middleware.Adapter{}, r.everyReqStack...),
	}
}

// serveFile responds with the file named by the FileParam path parameter.
func (r *Router) serveFile(maxAge time.Duration) resp.HandlerFunc {
	cacheControl := fmt.Sprintf("max-age=%d", int(maxAge.Seconds()))
	return func(rr *resp.Response) {
		if maxAge > 0 {
			if err := rr.SetHeader("Cache-Control", cacheControl); err != nil {
				r.d.Err(rr, err)
				return
			}
		}

		if _, err := rr.FileAuto(rr.Req().Param(FileParam)); err != nil {
			r.d.Err(rr, err)
		}
	}
}
