package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/courier"
)

// A ValidationError names the field whose value Got broke Rule,
// e.g., Rule "min=1; int64" for a "bytes" query param of 0.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("field=%q rule=%q got=%q", e.Field, e.Rule, fmt.Sprint(e.Got))
}

// ValidationErrors are all the fields of one struct failing validation.
//
// resp.Responder.Err answers them with 400 Bad Request and their JSON encoding:
//
//	{"validationErrors":[{"field":"bytes","got":0,"rule":"min=1; int64"}]}
type ValidationErrors []ValidationError

// Error lists one ValidationError a line.
func (v ValidationErrors) Error() string {
	var b strings.Builder
	for i, e := range v {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.String())
	}

	return b.String()
}

func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errors []ValidationError `json:"validationErrors,omitempty"`
	}{v})
}

// Unwrap makes ValidationErrors match courier.ErrNotValid.
func (ValidationErrors) Unwrap() error { return courier.ErrNotValid }
