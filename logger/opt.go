package logger

import "log"

// A LoggerOptFn is a functional option configuring a PublishLogger when constructing a new one.
type LoggerOptFn func(*PublishLogger)

// WithEnv sets the environment PublishLogger is operating in.
func WithEnv(env string) func(*PublishLogger) {
	return func(l *PublishLogger) {
		l.env = env
	}
}

// WithLevel sets the log level PublishLogger uses.
func WithLevel(level LogLevel) func(*PublishLogger) {
	return func(l *PublishLogger) {
		l.ll = level
	}
}

// WithLogger sets the log.Logger PublishLogger uses.
func WithLogger(log *log.Logger) func(*PublishLogger) {
	return func(l *PublishLogger) {
		l.l = log
	}
}

// WithSkip sets the number of frames in the call stack
// to skip in order to log the desired file and line number
// of the calling code.
func WithSkip(skip int) func(*PublishLogger) {
	return func(l *PublishLogger) {
		l.skip = skip
	}
}
