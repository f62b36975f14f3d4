package resp

import (
	"net/http"

	"github.com/xy-planning-network/publish"
)

var _ Context = (*HTTPContext)(nil)

// A Route is the configuration of how a route's response is rendered.
type Route struct {
	// Type is the format: "json", "xml", "html"; anything else renders text.
	Type string `yaml:"type"`

	// Sync keeps the app and handler keys in JSON responses.
	Sync bool `yaml:"sync"`

	// Stylesheet is the XSLT file rendering HTML responses, relative to the theme.
	Stylesheet string `yaml:"stylesheet"`
}

// Site describes the site a request is served for.
type Site struct {
	Theme string
}

// Settings is the installation-wide configuration a Response reads.
type Settings struct {
	// BasePath is the directory holding templates/ and lib/
	BasePath string
}

// A Context exposes what a Response needs to know about the request it responds to.
type Context interface {
	Request() *http.Request
	Response() Transport
	Route() Route
	Cookies() Cookies
	Site() Site
	Settings() Settings
}

// HTTPContext implements Context for an *http.Request.
type HTTPContext struct {
	r        *http.Request
	t        Transport
	route    Route
	cookies  Cookies
	site     Site
	settings Settings
}

// A ContextOptFn configures an *HTTPContext when constructing it.
type ContextOptFn func(*HTTPContext)

// NewContext constructs an *HTTPContext responding to r through w.
//
// Unless overridden by opts, the Route and *CookieJar come from r.Context()
// and w is wrapped with NewTransport.
func NewContext(w http.ResponseWriter, r *http.Request, opts ...ContextOptFn) *HTTPContext {
	c := &HTTPContext{r: r}
	if r != nil {
		if route, ok := r.Context().Value(publish.RouteKey).(Route); ok {
			c.route = route
		}

		if jar, ok := CookieJarFromContext(r.Context()); ok {
			c.cookies = jar
		}
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.t == nil && w != nil {
		c.t = NewTransport(w)
	}

	if c.cookies == nil {
		c.cookies = NewCookieJar()
	}

	return c
}

// WithCookies sets the Cookies serialized into Set-Cookie.
func WithCookies(cookies Cookies) ContextOptFn {
	return func(c *HTTPContext) {
		c.cookies = cookies
	}
}

// WithRoute sets the Route.
func WithRoute(route Route) ContextOptFn {
	return func(c *HTTPContext) {
		c.route = route
	}
}

// WithSettings sets the Settings.
func WithSettings(settings Settings) ContextOptFn {
	return func(c *HTTPContext) {
		c.settings = settings
	}
}

// WithSite sets the Site.
func WithSite(site Site) ContextOptFn {
	return func(c *HTTPContext) {
		c.site = site
	}
}

// WithTransport sets the Transport instead of wrapping the http.ResponseWriter.
func WithTransport(t Transport) ContextOptFn {
	return func(c *HTTPContext) {
		c.t = t
	}
}

func (c *HTTPContext) Cookies() Cookies { return c.cookies }
func (c *HTTPContext) Request() *http.Request { return c.r }
func (c *HTTPContext) Response() Transport { return c.t }
func (c *HTTPContext) Route() Route { return c.route }
func (c *HTTPContext) Settings() Settings { return c.settings }
func (c *HTTPContext) Site() Site { return c.site }
