package logger

import (
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/xy-planning-network/courier"
)

// sentryFrames is the frame SentryLogger methods add before reaching the wrapped SkipLogger.
const sentryFrames = 1

var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

// A SentryLogger writes logs with the wrapped SkipLogger
// and reports the errors attached to warnings, errors and fatal messages to Sentry.
type SentryLogger struct {
	hub *sentry.Hub
	l   SkipLogger
}

// NewSentryLogger binds a Sentry client for dsn to the current hub,
// so panics recovered by sentryhttp are reported with it as well,
// and wraps cl in a SentryLogger.
//
// Should the client fail to set up, cl returns unwrapped.
func NewSentryLogger(cl *CourierLogger, dsn string) Logger {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: cl.env.String(),
		// NOTE: peers hanging up mid-transfer are routine for range requests.
		IgnoreErrors: []string{"write: broken pipe", "connection reset by peer"},
	})
	if err != nil {
		cl.Error(fmt.Sprintf("unable to init Sentry: %s", err), nil)
		return cl
	}

	hub := sentry.CurrentHub()
	hub.BindClient(client)

	return &SentryLogger{hub: hub, l: cl.AddSkip(cl.Skip() + sentryFrames)}
}

// AddSkip returns a copy of the SentryLogger whose wrapped SkipLogger
// scrolls back i frames when logging a message.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{hub: sl.hub, l: sl.l.AddSkip(i + sentryFrames)}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.l.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.l.Info(msg, ctx) }

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.l.Error(msg, ctx)
	sl.report(LogLevelError, ctx)
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.l.Fatal(msg, ctx)
	sl.report(LogLevelFatal, ctx)
}

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.l.Warn(msg, ctx)
	sl.report(LogLevelWarn, ctx)
}

// LogLevel returns the LogLevel of the wrapped SkipLogger.
func (sl *SentryLogger) LogLevel() LogLevel { return sl.l.LogLevel() }

// Skip returns the current amount of frames the SentryLogger scrolls back.
func (sl *SentryLogger) Skip() int { return sl.l.Skip() - sentryFrames }

// report captures ctx.Error at level, tagging the event with
// the Range header and request ID of ctx.Request when there are any.
//
// The hub sentryhttp puts on the request's context is preferred;
// without one, a clone of the SentryLogger's hub keeps scopes apart
// between requests reporting at once.
func (sl *SentryLogger) report(level LogLevel, ctx *LogContext) {
	if level < sl.LogLevel() || ctx == nil || ctx.Error == nil {
		return
	}

	var hub *sentry.Hub
	if ctx.Request != nil {
		hub = sentry.GetHubFromContext(ctx.Request.Context())
	}

	if hub == nil {
		hub = sl.hub.Clone()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(sentryLevels[level])
		if ctx.Data != nil {
			scope.SetExtra("data", ctx.Data)
		}

		if r := ctx.Request; r != nil {
			scope.SetRequest(r)
			if rng := r.Header.Get("Range"); rng != "" {
				scope.SetTag("range", rng)
			}

			if id, ok := r.Context().Value(courier.RequestIDKey).(string); ok {
				scope.SetTag("request_id", id)
			}
		}

		hub.CaptureException(ctx.Error)
	})
}
