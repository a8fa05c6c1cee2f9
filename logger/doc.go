/*
Package logger writes leveled, single-line logs for courier.

[New] returns a [*CourierLogger] printing to os.Stdout at [LogLevelInfo] unless
[Option]s say otherwise. Messages below the configured level are dropped.
A line reads:

	2026/04/28 15:55:21 [WARN] courier/http/resp/response.go:143 'dropped response' log_context: {"error":"write: broken pipe","request":{"method":"GET","range":"bytes=0-","url":"/files/a.mp4"}}

The call site is the code calling the Logger method.
Helpers logging on behalf of their caller move it up the stack with [SkipLogger.AddSkip].

The trailing [LogContext] is JSON and only present when one is passed.

With SENTRY_DSN set, New wraps the CourierLogger in a [SentryLogger],
which also reports the error of any Warn, Error or Fatal [LogContext] to Sentry.
*/
package logger
