package resp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/http/ranges"
	"github.com/xy-planning-network/courier/http/req"
	"github.com/xy-planning-network/courier/logger"
)

const responderFrames = 0

// A HandlerFunc responds to a request through the *Response it is handed.
type HandlerFunc func(*Response)

// Responder maintains reusable pieces for responding to HTTP requests.
//
// Most oftentimes, setting up a single instance of a Responder suffices for an application.
// When handling a specific HTTP request, New hands out a *Response
// owned by the goroutine handling that request.
type Responder struct {
	logger logger.Logger

	// Where File, FilePart and FileAuto read from
	store files.Store

	// Pool of *bytes.Buffer to encode JSON into
	pool *sync.Pool

	// Answer out of bounds ranges in FileAuto with 416 instead of returning an error
	strictRanges bool
}

// NewResponder constructs a *Responder using the ResponderOptFns passed in.
func NewResponder(opts ...ResponderOptFn) *Responder {
	d := &Responder{
		pool: &sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logger.New()
	}

	if l, ok := d.logger.(logger.SkipLogger); ok {
		d.logger = l.AddSkip(responderFrames)
	}

	return d
}

// New constructs an Open *Response for r transmitting over w.
func (d *Responder) New(w http.ResponseWriter, r *http.Request) *Response {
	return d.NewWithTransport(WriterTransport{W: w}, r)
}

// NewWithTransport constructs an Open *Response for r transmitting over t.
func (d *Responder) NewWithTransport(t Transport, r *http.Request) *Response {
	return &Response{
		d:      d,
		t:      t,
		req:    req.New(r),
		status: http.StatusOK,
		header: make(http.Header),
		state:  Open,
	}
}

// Handle adapts fn into an http.HandlerFunc.
//
// Should fn return without finalizing the *Response,
// Handle logs the mistake and responds with 500.
// Should fn panic before finalizing, Handle responds with 500
// and panics again for middleware.ReportPanic or net/http to recover.
func (d *Responder) Handle(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rr := d.New(w, r)
		defer func() {
			if p := recover(); p != nil {
				if rr.State() == Open {
					rr.Error(http.StatusInternalServerError)
				}
				panic(p)
			}
		}()

		fn(rr)

		if rr.State() == Open {
			d.logger.Error("handler returned without finalizing response", newLogContext(r, nil, nil))
			rr.Error(http.StatusInternalServerError)
		}
	}
}

// Err finalizes rr with the status best describing err and logs it.
//
//   - errors wrapping courier.ErrNotExist respond with 404
//   - errors wrapping ranges.ErrNotSatisfiable respond with 416,
//     with "Content-Range: bytes */{size}" when err carries a *ranges.UnsatisfiableError
//   - req.ValidationErrors respond with 400 and the errors as JSON
//   - errors wrapping courier.ErrBadFormat respond with 400
//   - all others respond with 500
//
// A nil err responds with 500 as well.
func (d *Responder) Err(rr *Response, err error) Outcome {
	if err == nil {
		err = fmt.Errorf("%w: Err called without an error", courier.ErrNotValid)
	}

	var (
		ue *ranges.UnsatisfiableError
		ve req.ValidationErrors
	)

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, courier.ErrNotExist):
		code = http.StatusNotFound
	case errors.As(err, &ue), errors.Is(err, ranges.ErrNotSatisfiable):
		code = http.StatusRequestedRangeNotSatisfiable
	case errors.As(err, &ve), errors.Is(err, courier.ErrBadFormat):
		code = http.StatusBadRequest
	}

	if code >= http.StatusInternalServerError {
		d.logger.Error(err.Error(), newLogContext(rr.req.Request, err, nil))
	} else {
		d.logger.Debug(err.Error(), newLogContext(rr.req.Request, err, nil))
	}

	switch {
	case code == http.StatusRequestedRangeNotSatisfiable && ue != nil:
		return rr.unsatisfiable(ue.Total)
	case code == http.StatusBadRequest && len(ve) > 0:
		return rr.invalid(ve)
	}

	return rr.Error(code)
}

// newLogContext helps structure a logger.LogContext from the provided parts.
func newLogContext(r *http.Request, err error, data map[string]any) *logger.LogContext {
	if r == nil && err == nil && data == nil {
		return nil
	}

	return &logger.LogContext{Request: r, Error: err, Data: data}
}
