package resp

import (
	"time"

	"github.com/xy-planning-network/publish/http/xslt"
	"github.com/xy-planning-network/publish/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithResolver sets the Resolver locating stylesheets for every Response,
// regardless of the base path in its Settings.
func WithResolver(r Resolver) ResponderOptFn {
	return func(d *Responder) {
		d.resolver = r
	}
}

// WithSilentTransformErrors makes a failure to render HTML
// write the head as if nothing went wrong, no body, and return no error.
//
// Without this option, the failure writes a 500 head and returns the error.
func WithSilentTransformErrors() ResponderOptFn {
	return func(d *Responder) {
		d.silentTransformErrors = true
	}
}

// WithTransformTimeout sets the upper bound for applying a stylesheet.
//
// A non-positive timeout keeps xslt.DefaultTimeout.
func WithTransformTimeout(timeout time.Duration) ResponderOptFn {
	return func(d *Responder) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithTransformer sets the Transformer applying stylesheets.
func WithTransformer(t xslt.Transformer) ResponderOptFn {
	return func(d *Responder) {
		d.transformer = t
	}
}
