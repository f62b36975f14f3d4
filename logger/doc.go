/*
Package logger provides logging functionality to a publish app by defining the required behavior in [Logger]
and providing an implementation of it with [PublishLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, if [PublishLogger] is initialized with [LogLevelWarn],
only [*PublishLogger.Warn], [*PublishLogger.Error], and [*PublishLogger.Fatal] produce messages.

# PublishLogger

Log messages emitted by [PublishLogger] are composed of a few parts:
	- timestamp
	- log level
	- call site
	- message
	- log context

Here's an example:
	2024/04/28 15:55:21 [ERROR] publish/http/resp/response.go:88 'cannot transform' log_context: {"error":"exit status 2","request":{"method":"GET","url":"/"}}

The log context is a JSON-encoded [*LogContext].

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] wraps the [PublishLogger] in a [SentryLogger],
which additionally reports the errors carried by a [*LogContext] to Sentry.
*/
package logger
