package resp

import (
	"errors"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/xy-planning-network/courier/http/ranges"
)

// File responds with the whole file called name,
// setting Content-Length to its size.
//
// Errors from the files.Store, e.g., one wrapping files.ErrNotExist,
// return before anything is set, leaving the Response Open.
func (r *Response) File(name string) (Outcome, error) {
	if r.state == Finalized {
		return r.Finalize(nil), nil
	}

	if r.d.store == nil {
		return Pending, ErrNoStore
	}

	size, err := r.d.store.Stat(name)
	if err != nil {
		return Pending, err
	}

	return r.serveFile(name, size, false)
}

// FilePart responds with 206 Partial Content and the bytes [start, end) of the file called name.
// Passing ranges.ToEnd for end runs to the end of the file.
//
// Unless 0 <= start < end <= size of the file,
// an error wrapping ranges.ErrNotSatisfiable returns
// before anything is set, leaving the Response Open.
func (r *Response) FilePart(name string, start, end int64) (Outcome, error) {
	if r.state == Finalized {
		return r.Finalize(nil), nil
	}

	if r.d.store == nil {
		return Pending, ErrNoStore
	}

	size, err := r.d.store.Stat(name)
	if err != nil {
		return Pending, err
	}

	w, err := ranges.NewWindow(size, start, end)
	if err != nil {
		return Pending, err
	}

	return r.serveWindow(name, w)
}

// FileAuto responds with the file called name,
// honoring the Range header of the request when there is one.
//
// Without a Range header, or with one FileAuto cannot read,
// the whole file is served with "Accept-Ranges: bytes" advertised.
// Only a single range is supported; "bytes=0-1,5-6" serves the whole file.
//
// A Range falling outside the file returns an error wrapping ranges.ErrNotSatisfiable,
// unless the Responder was configured using WithStrictRanges.
// Then, FileAuto responds 416 Range Not Satisfiable itself.
func (r *Response) FileAuto(name string) (Outcome, error) {
	if r.state == Finalized {
		return r.Finalize(nil), nil
	}

	if r.d.store == nil {
		return Pending, ErrNoStore
	}

	size, err := r.d.store.Stat(name)
	if err != nil {
		return Pending, err
	}

	w, ok, err := ranges.Resolve(r.req.Header("Range"), size)
	switch {
	case !ok:
		return r.serveFile(name, size, true)
	case errors.Is(err, ranges.ErrNotSatisfiable) && r.d.strictRanges:
		return r.unsatisfiable(size), nil
	case err != nil:
		return Pending, err
	}

	return r.serveWindow(name, w)
}

// serveFile opens and finalizes with the whole file.
func (r *Response) serveFile(name string, size int64, acceptRanges bool) (Outcome, error) {
	rc, err := r.d.store.Open(name)
	if err != nil {
		return Pending, err
	}

	if acceptRanges {
		r.header.Set("Accept-Ranges", "bytes")
	}

	r.setContentType(name)
	r.header.Set("Content-Length", strconv.FormatInt(size, 10))
	return r.Finalize(rc), nil
}

// serveWindow opens and finalizes with the bytes in w.
func (r *Response) serveWindow(name string, w ranges.Window) (Outcome, error) {
	rc, err := r.d.store.OpenSection(name, w.Start, w.Len())
	if err != nil {
		return Pending, err
	}

	r.status = http.StatusPartialContent
	r.setContentType(name)
	r.header.Set("Accept-Ranges", "bytes")
	r.header.Set("Content-Range", w.ContentRange())
	r.header.Set("Content-Length", strconv.FormatInt(w.Len(), 10))

	o := r.Finalize(rc)
	if o == Sent {
		partialBytesTotal.Add(float64(w.Len()))
	}

	return o, nil
}

// unsatisfiable responds with 416 for a file of size bytes.
func (r *Response) unsatisfiable(size int64) Outcome {
	if r.state == Finalized {
		return r.Finalize(nil)
	}

	code := http.StatusRequestedRangeNotSatisfiable
	r.status = code
	r.header = make(http.Header)
	r.header.Set("Content-Range", ranges.Unsatisfied(size))
	return r.Text(statusLine(code))
}

// setContentType guesses the Content-Type from the extension of name
// unless one was already set.
func (r *Response) setContentType(name string) {
	if r.header.Get("Content-Type") != "" {
		return
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" && !strings.HasPrefix(ct, "application/octet-stream") {
		r.header.Set("Content-Type", ct)
	}
}
