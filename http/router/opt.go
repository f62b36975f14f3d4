package router

import (
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/logger"
)

// A RouterOptFn mutates the provided *Router in some way.
type RouterOptFn func(*Router)

// WithLogger sets the logger.Logger reporting failing Handlers.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(l logger.Logger) RouterOptFn {
	return func(r *Router) {
		r.logger = l
	}
}

// WithSettings sets the Settings every Response is written with.
func WithSettings(s resp.Settings) RouterOptFn {
	return func(r *Router) {
		r.settings = s
	}
}

// WithSite sets the Site every Response is written for.
func WithSite(s resp.Site) RouterOptFn {
	return func(r *Router) {
		r.site = s
	}
}
