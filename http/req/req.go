package req

import (
	"net/http"
	"net/url"
	"regexp"
	"sync"

	"github.com/gorilla/mux"
)

// routePatterns caches the compiled path pattern of each route by its source.
var routePatterns sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := routePatterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := routePatterns.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// A Context is the read-only view of an inbound request.
type Context struct {
	Request *http.Request

	// Params are the named path parameters of the matched route.
	Params map[string]string

	// Query is the parsed query string.
	Query url.Values

	// Match holds the groups captured by the matched route's path pattern, in order.
	Match []string
}

// New constructs a Context from r.
//
// When r was not routed by a *mux.Router, Params and Match are empty.
func New(r *http.Request) Context {
	c := Context{
		Request: r,
		Params:  mux.Vars(r),
		Query:   r.URL.Query(),
		Match:   make([]string, 0),
	}

	if c.Params == nil {
		c.Params = make(map[string]string)
	}

	route := mux.CurrentRoute(r)
	if route == nil {
		return c
	}

	pattern, err := route.GetPathRegexp()
	if err != nil {
		return c
	}

	re, err := compilePattern(pattern)
	if err != nil {
		return c
	}

	if m := re.FindStringSubmatch(r.URL.Path); len(m) > 1 {
		c.Match = append(c.Match, m[1:]...)
	}

	return c
}

// Param retrieves the path parameter called name.
func (c Context) Param(name string) string { return c.Params[name] }

// QueryValue retrieves the first query value for name.
func (c Context) QueryValue(name string) string { return c.Query.Get(name) }

// Header retrieves the first value of the request header called name.
func (c Context) Header(name string) string {
	if c.Request == nil {
		return ""
	}
	return c.Request.Header.Get(name)
}
