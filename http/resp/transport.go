package resp

import (
	"io"
	"net/http"
)

// A Transport writes a finalized response to the wire.
type Transport interface {
	Transmit(status int, header http.Header, body io.Reader) error
}

// A TransportFunc adapts a function to a Transport.
type TransportFunc func(status int, header http.Header, body io.Reader) error

func (fn TransportFunc) Transmit(status int, header http.Header, body io.Reader) error {
	return fn(status, header, body)
}

// WriterTransport transmits over an http.ResponseWriter.
type WriterTransport struct {
	W http.ResponseWriter
}

// Transmit copies header onto the http.ResponseWriter's headers,
// writes status and then copies body through.
//
// Headers set on the http.ResponseWriter before, say by middleware,
// are kept unless header names them as well.
func (t WriterTransport) Transmit(status int, header http.Header, body io.Reader) error {
	h := t.W.Header()
	for k, vals := range header {
		h[k] = append([]string(nil), vals...)
	}

	t.W.WriteHeader(status)
	if body == nil {
		return nil
	}

	_, err := io.Copy(t.W, body)
	return err
}
