package logger

import (
	"fmt"
	"log"
	"os"
	"path"
	"regexp"
	"runtime"

	"github.com/fatih/color"
	"github.com/xy-planning-network/courier"
)

// knownFrames are the frames between runtime.Caller in emit and the caller of a Logger method.
const knownFrames = 2

var courierPathRegex = regexp.MustCompile("courier/.*$")

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// The SkipLogger interface defines a Logger that scrolls back
// the number of frames provided in order to ascertain the call site.
type SkipLogger interface {
	AddSkip(i int) SkipLogger
	Skip() int
	Logger
}

// A LogLevel ranks how important a message is. Higher is more important.
type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levelNames = [...]string{
	LogLevelUnk:   "UNK",
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
	LogLevelFatal: "FATAL",
}

var levelColors = map[LogLevel]*color.Color{
	LogLevelDebug: color.New(color.FgWhite),
	LogLevelInfo:  color.New(color.FgBlue),
	LogLevelWarn:  color.New(color.FgYellow),
	LogLevelError: color.New(color.FgRed),
	LogLevelFatal: color.New(color.FgMagenta, color.Bold),
}

// NewLogLevel matches val against the upper case names of the levels,
// e.g., "WARN", returning LogLevelUnk for anything else.
func NewLogLevel(val string) LogLevel {
	for ll, name := range levelNames {
		if ll != int(LogLevelUnk) && name == val {
			return LogLevel(ll)
		}
	}

	return LogLevelUnk
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || int(ll) >= len(levelNames) {
		ll = LogLevelUnk
	}

	return "[" + levelNames[ll] + "]"
}

// CourierLogger implements Logger using log.
type CourierLogger struct {
	skip int
	env  courier.Environment
	l    *log.Logger
	ll   LogLevel
}

// New constructs a Logger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default environment is read from ENVIRONMENT, else DEVELOPMENT.
// The default log level is INFO.
//
// When SENTRY_DSN is set, the returned Logger is a *SentryLogger
// wrapping the *CourierLogger.
func New(opts ...Option) Logger {
	l := &CourierLogger{
		env: courier.EnvVarOrEnv("ENVIRONMENT", courier.Development),
		l:   log.New(os.Stdout, "", log.LstdFlags),
		ll:  LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return l
	}

	l.Info("SENTRY_DSN set, configuring SentryLogger", nil)
	return NewSentryLogger(l, dsn)
}

// AddSkip returns a copy of the CourierLogger
// scrolling back i frames, replacing the current number, when logging a message.
func (l *CourierLogger) AddSkip(i int) SkipLogger {
	cp := *l
	cp.skip = i
	return &cp
}

func (l *CourierLogger) Debug(msg string, ctx *LogContext) { l.emit(LogLevelDebug, msg, ctx) }
func (l *CourierLogger) Error(msg string, ctx *LogContext) { l.emit(LogLevelError, msg, ctx) }
func (l *CourierLogger) Fatal(msg string, ctx *LogContext) { l.emit(LogLevelFatal, msg, ctx) }
func (l *CourierLogger) Info(msg string, ctx *LogContext)  { l.emit(LogLevelInfo, msg, ctx) }
func (l *CourierLogger) Warn(msg string, ctx *LogContext)  { l.emit(LogLevelWarn, msg, ctx) }

// LogLevel returns the LogLevel set for the CourierLogger.
func (l *CourierLogger) LogLevel() LogLevel { return l.ll }

// Skip returns the current amount of frames to scroll back
// when logging a message.
func (l *CourierLogger) Skip() int { return l.skip }

// emit prints msg when level is at or above the CourierLogger's,
// followed by ctx if there is one.
func (l *CourierLogger) emit(level LogLevel, msg string, ctx *LogContext) {
	if level < l.ll {
		return
	}

	_, file, line, _ := runtime.Caller(knownFrames + l.skip)
	out := levelColors[level].Sprintf("%s %s:%d '%s'", level, callSite(file), line, msg)
	if ctx == nil {
		l.l.Println(out)
		return
	}

	l.l.Println(out, "log_context:", ctx)
}

// callSite trims file down to something readable.
//
// e.g.:
// /home/dev/courier/http/resp/response.go => courier/http/resp/response.go
// /home/dev/my-project/internal/internal.go => internal/internal.go
func callSite(file string) string {
	if match := courierPathRegex.FindString(file); match != "" {
		return match
	}

	dir, name := path.Split(file)
	return fmt.Sprint(path.Base(dir), "/", name)
}
