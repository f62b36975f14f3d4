package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/middleware"
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/http/router"
	"github.com/xy-planning-network/publish/http/xslt"
	"github.com/xy-planning-network/publish/logger"
	"github.com/xy-planning-network/publish/observability"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Publishing defaults
	basePathEnvVar         = "PUBLISH_BASE_PATH"
	defaultBasePath        = "."
	corsOriginEnvVar       = "PUBLISH_CORS_ORIGIN"
	metricsPathEnvVar      = "PUBLISH_METRICS_PATH"
	DefaultMetricsPath     = "/metrics"
	routesEnvVar           = "PUBLISH_ROUTES"
	defaultRoutesFile      = "routes.yaml"
	saxonJarEnvVar         = "SAXON_JAR"
	silentErrsEnvVar       = "PUBLISH_SILENT_TRANSFORM_ERRORS"
	themeEnvVar            = "PUBLISH_THEME"
	DefaultTheme           = "default"
	transformTimeoutEnvVar = "TRANSFORM_TIMEOUT"

	// Web server defaults
	addrEnvVar                = "PUBLISH_ADDR"
	DefaultAddr               = ":3000"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 10 * time.Second
)

// defaults fills in every component no RangerOption configured,
// then registers the metrics endpoint and the Routes in the routes file.
func (r *Ranger) defaults() error {
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.env == "" {
		r.env = publish.EnvVarOrEnv(environmentEnvVar, publish.Development)
	}

	if r.l == nil {
		r.l = defaultLogger(r.env)
	}

	if r.settings.BasePath == "" {
		r.settings.BasePath = publish.EnvVarOrString(basePathEnvVar, defaultBasePath)
	}

	if r.site.Theme == "" {
		r.site.Theme = publish.EnvVarOrString(themeEnvVar, DefaultTheme)
	}

	if r.doer == nil {
		r.doer = defaultResponder(r.l)
	}

	r.Router = defaultRouter(r.env, r.l, r.doer, r.settings, r.site)

	if r.srv == nil {
		r.srv = defaultServer(r.ctx)
	}
	r.srv.Handler = r.Router

	routes, err := r.loadRoutes()
	if err != nil {
		return err
	}
	r.HandleRoutes(routes)

	return nil
}

// defaultLogger constructs a logger.Logger configured for use in the publisher.
func defaultLogger(env publish.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(publish.EnvVarOrLogLevel(logLevelEnvVar, defaultLogLvl)),
	)
	l.Debug("setting up publisher logger", nil)

	return l
}

// defaultResponder configures the *resp.Responder every route writes through.
//
// When SAXON_JAR is unset, the jar beneath the base path is run.
func defaultResponder(l logger.Logger) *resp.Responder {
	timeout := publish.EnvVarOrDuration(transformTimeoutEnvVar, xslt.DefaultTimeout)
	args := []resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithTransformTimeout(timeout),
	}

	if jar := os.Getenv(saxonJarEnvVar); jar != "" {
		args = append(args, resp.WithTransformer(xslt.NewSaxon(jar, timeout)))
	}

	if publish.EnvVarOrBool(silentErrsEnvVar, false) {
		args = append(args, resp.WithSilentTransformErrors())
	}

	return resp.NewResponder(args...)
}

// defaultRouter constructs a *router.Router with the middlewares every request passes through
// and the prometheus metrics mounted.
func defaultRouter(
	env publish.Environment,
	l logger.Logger,
	doer *resp.Responder,
	settings resp.Settings,
	site resp.Site,
) *router.Router {
	rt := router.New(env, doer, router.WithLogger(l), router.WithSettings(settings), router.WithSite(site))
	rt.OnEveryRequest(
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.CORS(os.Getenv(corsOriginEnvVar)),
	)
	rt.Mount(publish.EnvVarOrString(metricsPathEnvVar, DefaultMetricsPath), observability.Handler())
	rt.HandleNotFound(http.NotFound)

	return rt
}

// defaultServer constructs an *http.Server listening on PUBLISH_ADDR.
func defaultServer(ctx context.Context) *http.Server {
	return &http.Server{
		Addr:         publish.EnvVarOrString(addrEnvVar, DefaultAddr),
		BaseContext:  func(net.Listener) context.Context { return ctx },
		ReadTimeout:  publish.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		IdleTimeout:  publish.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		WriteTimeout: publish.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

// loadRoutes parses the routes file named by PUBLISH_ROUTES, relative to the base path.
//
// A missing routes file is only an error when PUBLISH_ROUTES names it.
func (r *Ranger) loadRoutes() ([]router.Route, error) {
	name := os.Getenv(routesEnvVar)
	named := name != ""
	if !named {
		name = defaultRoutesFile
	}

	fp := name
	if !filepath.IsAbs(fp) {
		fp = filepath.Join(r.settings.BasePath, fp)
	}

	f, err := os.Open(fp)
	if errors.Is(err, fs.ErrNotExist) && !named {
		r.l.Warn(fmt.Sprintf("no routes file at %s, publishing nothing", fp), nil)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: routes file: %s", publish.ErrMissingData, err)
	}
	defer f.Close()

	routes, err := router.ParseRoutes(f, os.DirFS(r.settings.BasePath))
	if err != nil {
		return nil, err
	}

	r.l.Debug(fmt.Sprintf("loaded %d routes from %s", len(routes), fp), nil)
	return routes, nil
}
