package middleware

import (
	"io"
	"net/http"
)

// A statusWriter records the status code and number of body bytes
// written through the http.ResponseWriter it wraps.
type statusWriter struct {
	http.ResponseWriter
	status  int
	size    int64
	written bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records and writes the first status code only.
func (sw *statusWriter) WriteHeader(code int) {
	if sw.written {
		return
	}

	sw.status = code
	sw.written = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.WriteHeader(http.StatusOK)
	}

	n, err := sw.ResponseWriter.Write(b)
	sw.size += int64(n)
	return n, err
}

// ReadFrom keeps the wrapped http.ResponseWriter's io.ReaderFrom,
// and with it sendfile, available to io.Copy.
func (sw *statusWriter) ReadFrom(r io.Reader) (int64, error) {
	if !sw.written {
		sw.WriteHeader(http.StatusOK)
	}

	var (
		n   int64
		err error
	)
	if rf, ok := sw.ResponseWriter.(io.ReaderFrom); ok {
		n, err = rf.ReadFrom(r)
	} else {
		n, err = io.Copy(struct{ io.Writer }{sw.ResponseWriter}, r)
	}

	sw.size += n
	return n, err
}

// Unwrap exposes the wrapped http.ResponseWriter to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }

// wrap reuses w if it already is a *statusWriter.
func wrap(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return newStatusWriter(w)
}
