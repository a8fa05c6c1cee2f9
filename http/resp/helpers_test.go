package resp_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing/fstest"

	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/logger"
)

var content = strings.Repeat("0123456789", 100)

type transmission struct {
	status int
	header http.Header
	body   string
}

// recorder is a Transport remembering everything it is asked to transmit.
type recorder struct {
	sent []transmission
	err  error
}

func (rt *recorder) Transmit(status int, header http.Header, body io.Reader) error {
	b, _ := io.ReadAll(body)
	rt.sent = append(rt.sent, transmission{status, header.Clone(), string(b)})
	return rt.err
}

func (rt *recorder) last() transmission { return rt.sent[len(rt.sent)-1] }

type testLogger struct{ b *bytes.Buffer }

func newLogger() testLogger                                  { return testLogger{new(bytes.Buffer)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }

func newStore() *files.FSStore {
	return files.New(fstest.MapFS{
		"clip.bin":  {Data: []byte(content)},
		"empty.bin": {Data: []byte{}},
		"page.html": {Data: []byte("<p>hi</p>")},
	})
}

// trackedBody reports whether it was closed.
type trackedBody struct {
	io.Reader
	closed bool
}

func (tb *trackedBody) Close() error {
	tb.closed = true
	return nil
}
