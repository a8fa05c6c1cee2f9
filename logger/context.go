package logger

import (
	"encoding"
	"encoding/json"
	"net/http"
)

var _ encoding.TextMarshaler = LogContext{}

// LogContext is the structured tail of a log line:
// whatever a message needs but cannot say in a few words.
type LogContext struct {
	Data    map[string]any
	Error   error
	Request *http.Request
}

type logRequest struct {
	Method string `json:"method"`
	Range  string `json:"range,omitempty"`
	URL    string `json:"url,omitempty"`
}

type logContext struct {
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
	Request *logRequest    `json:"request,omitempty"`
}

// MarshalText encodes the set fields of lc as JSON.
// Of Request, only the method, URL and Range header are kept.
//
// Data holding values JSON cannot represent fails to encode.
func (lc LogContext) MarshalText() ([]byte, error) {
	out := logContext{Data: lc.Data}
	if lc.Error != nil {
		out.Error = lc.Error.Error()
	}

	if r := lc.Request; r != nil {
		out.Request = &logRequest{Method: r.Method, Range: r.Header.Get("Range")}
		if r.URL != nil {
			out.Request.URL = r.URL.String()
		}
	}

	return json.Marshal(out)
}

// String is MarshalText as a string, or the encoding error's text when that fails.
func (lc LogContext) String() string {
	b, err := lc.MarshalText()
	if err != nil {
		return `{"log_context_error":` + quote(err.Error()) + `}`
	}

	return string(b)
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
