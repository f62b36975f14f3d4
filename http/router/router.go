package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/middleware"
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/logger"
)

const cacheControlAge = "max-age=2592000" // 30 days

// A HandlerFunc produces the content published under its Handler's app and ID.
type HandlerFunc func(*http.Request) (any, error)

// A Handler is one piece of content a Route publishes.
type Handler struct {
	App string
	ID  string
	Fn  HandlerFunc
}

// A Route maps a path and HTTP method to the Handlers whose content is published there
// and how that content is rendered.
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path   string
	Method string

	// Type is the format: "json", "xml", "html"; anything else renders text.
	Type string

	// Sync keeps app and handler keys in JSON responses.
	Sync bool

	// Stylesheet renders HTML responses.
	Stylesheet string

	Handlers    []Handler
	Middlewares []middleware.Adapter
}

// Config returns the rendering configuration of the Route.
func (route Route) Config() resp.Route {
	return resp.Route{Type: route.Type, Sync: route.Sync, Stylesheet: route.Stylesheet}
}

// Router routes requests to the Routes that publish content for them.
type Router struct {
	Env           publish.Environment
	doer          *resp.Responder
	everyReqStack []middleware.Adapter
	logger        logger.Logger
	r             *mux.Router
	settings      resp.Settings
	site          resp.Site
}

// New constructs a [*Router] for the given environment,
// writing every Response through doer.
func New(env publish.Environment, doer *resp.Responder, opts ...RouterOptFn) *Router {
	r := &Router{Env: env, doer: doer, r: mux.NewRouter()}
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.New()
	}

	if r.doer == nil {
		r.doer = resp.NewResponder(resp.WithLogger(r.logger))
	}

	return r
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleAssets serves the files in fsys beneath prefix with a long-lived "Cache-Control" header.
func (r *Router) HandleAssets(prefix string, fsys http.FileSystem) {
	r.r.PathPrefix(prefix).Handler(middleware.Chain(
		http.StripPrefix(prefix, http.FileServer(fsys)),
		append(r.everyReqStack, cacheControlMiddleware())...,
	))
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = middleware.Chain(
		handler,
		append([]middleware.Adapter{middleware.ReportPanic(r.Env)}, r.everyReqStack...)...,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := []middleware.Adapter{middleware.ReportPanic(r.Env)}
		mws = append(mws, r.everyReqStack...)
		mws = append(mws, middlewares...)
		mws = append(mws, middleware.InjectRoute(route.Config()))
		mws = append(mws, route.Middlewares...)

		method := route.Method
		if method == "" {
			method = http.MethodGet
		}

		r.r.Handle(route.Path, middleware.Chain(r.publish(route), mws...)).Methods(method)
	}
}

// Mount registers h, unpublished, for requests to path with any method,
// behind the middlewares applied to every request.
func (r *Router) Mount(path string, h http.Handler) {
	r.r.Handle(path, middleware.Chain(h, r.everyReqStack...))
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.r.ServeHTTP(w, req)
}

// SubrouterHost constructs a [Router] that handles requests for the host,
// publishing for site instead.
func (r *Router) SubrouterHost(host string, site resp.Site) *Router {
	sub := r.clone(r.r.Host(host).Subrouter())
	sub.site = site
	return sub
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/feeds") handles requests to endpoints like /feeds/news
func (r *Router) Subrouter(prefix string) *Router {
	return r.clone(r.r.PathPrefix(prefix).Subrouter())
}

func (r *Router) clone(mr *mux.Router) *Router {
	return &Router{
		Env:           r.Env,
		doer:          r.doer,
		everyReqStack: append([]middleware.Adapter(nil), r.everyReqStack...),
		logger:        r.logger,
		r:             mr,
		settings:      r.settings,
		site:          r.site,
	}
}

// publish runs the Route's Handlers one after the other, pushing what each returns,
// and writes the Response.
//
// A failing Handler is logged, sets http.StatusInternalServerError and pushes nothing.
func (r *Router) publish(route Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		res := r.doer.NewResponse()
		for _, h := range route.Handlers {
			if h.Fn == nil {
				continue
			}

			content, err := h.Fn(req)
			if err != nil {
				r.logger.Error("handler failed", &logger.LogContext{
					Data:    map[string]any{"app": h.App, "handler": h.ID},
					Error:   err,
					Request: req,
				})
				res.SetStatusCode(http.StatusInternalServerError)
				continue
			}

			res.Push(h.App, h.ID, content)
		}

		ctx := resp.NewContext(w, req, resp.WithSettings(r.settings), resp.WithSite(r.site))
		if err := res.Write(ctx); err != nil {
			r.logger.Warn("response not written in full", &logger.LogContext{Error: err, Request: req})
		}
	})
}

// cacheControlMiddleware helps by adding a "Cache-Control" header to the response.
func cacheControlMiddleware() middleware.Adapter {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", cacheControlAge)
			handler.ServeHTTP(w, r)
		})
	}
}
