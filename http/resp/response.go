package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xy-planning-network/courier/http/req"
	"golang.org/x/net/http/httpguts"
)

const (
	mimeHtml = "text/html; charset=utf8"
	mimeJson = "application/json; charset=utf8"
	mimeText = "text/plain; charset=utf8"
)

// A Response is the state of the response to one HTTP request.
//
// A Response is owned by the goroutine handling the request
// and is not safe for concurrent use.
type Response struct {
	d       *Responder
	t       Transport
	req     req.Context
	status  int
	header  http.Header
	state   State
	outcome Outcome
}

// Header returns a copy of the headers set so far.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Outcome reports what finalizing the Response did,
// Pending if it has not been finalized.
func (r *Response) Outcome() Outcome { return r.outcome }

// Req returns the read-only view of the request being responded to.
func (r *Response) Req() req.Context { return r.req }

// State returns where the Response is in its lifecycle.
func (r *Response) State() State { return r.state }

// Status returns the status code set so far, 200 by default.
func (r *Response) Status() int { return r.status }

// DelHeader removes the header called name.
func (r *Response) DelHeader(name string) error {
	if r.state == Finalized {
		return fmt.Errorf("%w: cannot delete header %q", ErrFinalized, name)
	}

	r.header.Del(name)
	return nil
}

// SetHeader sets the header called name to value, replacing any existing values.
// Header names are case-insensitive.
//
// An ErrNotValid returns if name or value cannot be written on the wire.
func (r *Response) SetHeader(name, value string) error {
	if r.state == Finalized {
		return fmt.Errorf("%w: cannot set header %q", ErrFinalized, name)
	}

	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: header name %q", ErrNotValid, name)
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("%w: value for header %q", ErrNotValid, name)
	}

	r.header.Set(name, value)
	return nil
}

// SetStatus sets the status code.
//
// An ErrNotValid returns if code is not a three-digit number.
func (r *Response) SetStatus(code int) error {
	if r.state == Finalized {
		return fmt.Errorf("%w: cannot set status %d", ErrFinalized, code)
	}

	if !validStatus(code) {
		return fmt.Errorf("%w: status %d", ErrNotValid, code)
	}

	r.status = code
	return nil
}

// Finalize transmits the status, headers and body,
// after which the Response is Finalized.
//
// Finalize takes ownership of body and closes it if it is an io.Closer,
// whether or not it is transmitted.
//
// Only the first call transmits anything; later calls return Skipped.
// Should the Transport fail, e.g., when the client has gone away,
// the failure is logged and Dropped returns.
func (r *Response) Finalize(body io.Reader) Outcome {
	if c, ok := body.(io.Closer); ok {
		defer c.Close()
	}

	if r.state == Finalized {
		r.d.logger.Debug("response already finalized, skipping", newLogContext(r.req.Request, nil, nil))
		return Skipped
	}

	r.state = Finalized
	if body == nil {
		body = http.NoBody
	}

	if err := r.t.Transmit(r.status, r.header, body); err != nil {
		r.d.logger.Warn(
			"dropped response",
			newLogContext(r.req.Request, err, map[string]any{"status": r.status}),
		)
		r.outcome = Dropped
	} else {
		r.outcome = Sent
	}

	observe(r.outcome, r.status)
	return r.outcome
}

// Html responds with the HTML page.
func (r *Response) Html(html string) Outcome {
	return r.finalizeAs(mimeHtml, strings.NewReader(html))
}

// Json responds with data encoded as JSON.
//
// Encoding failures return wrapping ErrNotValid,
// leaving the Response Open.
func (r *Response) Json(data any) (Outcome, error) {
	if r.state == Finalized {
		return r.Finalize(nil), nil
	}

	b := r.d.pool.Get().(*bytes.Buffer)
	b.Reset()
	defer r.d.pool.Put(b)

	if err := json.NewEncoder(b).Encode(data); err != nil {
		return Pending, fmt.Errorf("%w: cannot encode %T as JSON: %s", ErrNotValid, data, err)
	}

	return r.finalizeAs(mimeJson, bytes.NewReader(bytes.TrimSuffix(b.Bytes(), []byte("\n")))), nil
}

// Redirect responds with a redirect to the URL to.
//
// With overwrite, the status becomes 301 and all headers
// other than Location are discarded.
// Without it, only Location is set and the status is left alone.
func (r *Response) Redirect(to string, overwrite bool) Outcome {
	if r.state == Finalized {
		return r.Finalize(nil)
	}

	if overwrite {
		r.status = http.StatusMovedPermanently
		r.header = make(http.Header)
	}

	r.header.Set("Location", to)
	return r.Finalize(strings.NewReader("Redirect to " + to))
}

// Error discards all headers and responds with the status code
// and a plain text body like "404 Not Found".
//
// A code that is not three digits is replaced with 500.
func (r *Response) Error(code int) Outcome {
	if r.state == Finalized {
		return r.Finalize(nil)
	}

	if !validStatus(code) {
		r.d.logger.Warn(
			fmt.Sprintf("invalid status %d, responding with %d", code, http.StatusInternalServerError),
			newLogContext(r.req.Request, nil, nil),
		)
		code = http.StatusInternalServerError
	}

	r.status = code
	r.header = make(http.Header)
	return r.Text(statusLine(code))
}

// invalid discards all headers and responds with 400 and ve as JSON.
func (r *Response) invalid(ve req.ValidationErrors) Outcome {
	if r.state == Finalized {
		return r.Finalize(nil)
	}

	r.status = http.StatusBadRequest
	r.header = make(http.Header)
	o, err := r.Json(ve)
	if err != nil {
		return r.Error(http.StatusBadRequest)
	}

	return o
}

// Text responds with the plain text.
func (r *Response) Text(text string) Outcome {
	return r.finalizeAs(mimeText, strings.NewReader(text))
}

// finalizeAs sets the Content-Type before finalizing.
func (r *Response) finalizeAs(contentType string, body io.Reader) Outcome {
	if r.state == Open {
		r.header.Set("Content-Type", contentType)
	}

	return r.Finalize(body)
}

// statusLine formats code and its reason phrase, e.g., "404 Not Found".
// Codes without a reason phrase are formatted alone.
func statusLine(code int) string {
	return strings.TrimSpace(fmt.Sprintf("%d %s", code, http.StatusText(code)))
}

func validStatus(code int) bool {
	return code >= 100 && code <= 999
}
