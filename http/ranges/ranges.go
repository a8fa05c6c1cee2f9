package ranges

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xy-planning-network/courier"
)

// ToEnd marks a Spec or call to NewWindow as running until the end of the resource.
const ToEnd int64 = -1

const unit = "bytes="

var ErrNotSatisfiable = fmt.Errorf("%w: range not satisfiable", courier.ErrNotValid)

// An UnsatisfiableError is the [Start, End) asked of a resource of Total bytes
// that NewWindow could not form a Window from.
type UnsatisfiableError struct {
	Start int64
	End   int64
	Total int64
}

func (e *UnsatisfiableError) Error() string {
	return fmt.Sprintf("%s: [%d, %d) of %d", ErrNotSatisfiable, e.Start, e.End, e.Total)
}

func (e *UnsatisfiableError) Unwrap() error { return ErrNotSatisfiable }

// A Window is a concrete byte window onto a resource of Total bytes.
// End is exclusive.
type Window struct {
	Start int64
	End   int64
	Total int64
}

// NewWindow validates start and end against total, forming a Window.
// Passing ToEnd for end stretches the Window to total.
//
// Unless 0 <= start < end <= total, an *UnsatisfiableError wrapping ErrNotSatisfiable returns.
// This means a resource of size 0 never has a Window.
func NewWindow(total, start, end int64) (Window, error) {
	if end == ToEnd {
		end = total
	}

	if start < 0 || start >= end || end > total {
		return Window{}, &UnsatisfiableError{Start: start, End: end, Total: total}
	}

	return Window{Start: start, End: end, Total: total}, nil
}

// Len is the number of bytes in the Window.
func (w Window) Len() int64 { return w.End - w.Start }

// ContentRange formats w for use as a Content-Range header value.
func (w Window) ContentRange() string {
	return fmt.Sprintf("bytes %d-%d/%d", w.Start, w.End-1, w.Total)
}

// Unsatisfied formats the Content-Range header value accompanying
// a 416 response for a resource of total bytes.
func Unsatisfied(total int64) string {
	return fmt.Sprintf("bytes */%d", total)
}

// A Spec is a requested range not yet checked against a resource.
// End is exclusive or ToEnd.
type Spec struct {
	Start int64
	End   int64
}

// Parse reads a Range header value into a Spec.
//
// false returns if header is empty, is not in bytes, lists more than one range,
// or either bound is not a non-negative integer.
func Parse(header string) (Spec, bool) {
	if !strings.HasPrefix(header, unit) {
		return Spec{}, false
	}

	raw := strings.TrimSpace(header[len(unit):])
	if strings.Contains(raw, ",") {
		return Spec{}, false
	}

	startPart, endPart, ok := strings.Cut(raw, "-")
	if !ok {
		return Spec{}, false
	}

	s := Spec{End: ToEnd}
	if startPart = strings.TrimSpace(startPart); startPart != "" {
		start, err := parseOffset(startPart)
		if err != nil {
			return Spec{}, false
		}
		s.Start = start
	}

	if endPart = strings.TrimSpace(endPart); endPart != "" {
		last, err := parseOffset(endPart)
		if err != nil {
			return Spec{}, false
		}
		// NOTE: the header names the last byte, End is exclusive
		s.End = last + 1
	}

	return s, true
}

// Resolve parses header and checks it against total.
//
// When header holds no usable Spec, false returns
// and the whole resource ought to be served.
// When it does but the Spec falls outside the resource,
// true returns alongside an ErrNotSatisfiable.
func Resolve(header string, total int64) (Window, bool, error) {
	s, ok := Parse(header)
	if !ok {
		return Window{}, false, nil
	}

	w, err := NewWindow(total, s.Start, s.End)
	if err != nil {
		return Window{}, true, err
	}

	return w, true, nil
}

var errOffset = errors.New("bad offset")

func parseOffset(s string) (int64, error) {
	if strings.HasPrefix(s, "+") {
		return 0, errOffset
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || n == math.MaxInt64 {
		return 0, errOffset
	}
	return n, nil
}
