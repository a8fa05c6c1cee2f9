package resp

import (
	"github.com/xy-planning-network/courier/http/files"
	"github.com/xy-planning-network/courier/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithDir serves files from the directory dir.
func WithDir(dir string) ResponderOptFn {
	return WithStore(files.Dir(dir))
}

// WithLogger sets the provided implementation of logger.Logger
// for the Responder to use.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithStore sets the files.Store File, FilePart and FileAuto read from.
func WithStore(s files.Store) ResponderOptFn {
	return func(d *Responder) {
		d.store = s
	}
}

// WithStrictRanges makes FileAuto respond to a Range header
// falling outside the file with 416 Range Not Satisfiable
// instead of returning ranges.ErrNotSatisfiable to the handler.
func WithStrictRanges() ResponderOptFn {
	return func(d *Responder) {
		d.strictRanges = true
	}
}
