package logger

import (
	"log"

	"github.com/xy-planning-network/courier"
)

// An Option overrides one of the defaults New sets on a CourierLogger.
type Option func(*CourierLogger)

// WithEnv tags the CourierLogger, and any Sentry events it reports, with env.
func WithEnv(env courier.Environment) Option {
	return func(l *CourierLogger) { l.env = env }
}

// WithLevel drops messages below level.
func WithLevel(level LogLevel) Option {
	return func(l *CourierLogger) { l.ll = level }
}

// WithLogger swaps the destination of messages, os.Stdout by default, for lg.
// A nil lg is ignored.
func WithLogger(lg *log.Logger) Option {
	return func(l *CourierLogger) {
		if lg != nil {
			l.l = lg
		}
	}
}

// WithSkip is the number of frames beyond the Logger method
// to walk up when reporting the call site.
func WithSkip(skip int) Option {
	return func(l *CourierLogger) { l.skip = skip }
}
