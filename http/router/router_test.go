package router_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/middleware"
	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/http/router"
	"github.com/xy-planning-network/publish/logger"
)

func newLogger(w io.Writer) logger.Logger {
	return logger.New(logger.WithLogger(log.New(w, "", 0)))
}

func newRouter(b *bytes.Buffer) *router.Router {
	l := newLogger(b)
	return router.New(publish.Testing, resp.NewResponder(resp.WithLogger(l)), router.WithLogger(l))
}

func TestRouterHandle(t *testing.T) {
	tcs := []struct {
		name        string
		route       router.Route
		code        int
		contentType string
		body        string
	}{
		{
			"Text",
			router.Route{
				Path: "/feed",
				Handlers: []router.Handler{
					{App: "a", ID: "x", Fn: router.ValueHandler("x")},
					{App: "a", ID: "y", Fn: router.ValueHandler("y")},
				},
			},
			http.StatusOK,
			"text/plain",
			"x\ny",
		},
		{
			"JSON-Sync",
			router.Route{
				Path: "/feed",
				Type: "json",
				Sync: true,
				Handlers: []router.Handler{
					{App: "a", ID: "x", Fn: router.ValueHandler(1)},
					{App: "b", ID: "y", Fn: router.ValueHandler(true)},
				},
			},
			http.StatusOK,
			"application/json",
			`{"a":{"x":1},"b":{"y":true}}` + "\n",
		},
		{
			"Failing-Handler",
			router.Route{
				Path: "/feed",
				Type: "xml",
				Handlers: []router.Handler{
					{App: "a", ID: "x", Fn: func(*http.Request) (any, error) { return nil, errors.New("db down") }},
					{App: "a", ID: "y", Fn: router.ValueHandler("y")},
				},
			},
			http.StatusInternalServerError,
			"application/xml",
			"<?xml version=\"1.0\"?>\n<data><a><y>y</y></a></data>",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := newRouter(new(bytes.Buffer))
			r.Handle(tc.route)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil)

			// Act
			r.ServeHTTP(w, req)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			require.Equal(t, "identity", w.Header().Get("Content-Encoding"))
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestRouterHandleMiddlewares(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))

	var calls []string
	mark := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				calls = append(calls, name)
				h.ServeHTTP(w, req)
			})
		}
	}

	r.OnEveryRequest(mark("every"))
	r.HandleRoutes([]router.Route{{
		Path:        "/feed",
		Method:      http.MethodGet,
		Middlewares: []middleware.Adapter{mark("route")},
		Handlers: []router.Handler{{App: "a", ID: "x", Fn: func(req *http.Request) (any, error) {
			cfg, _ := req.Context().Value(publish.RouteKey).(resp.Route)
			jar, _ := resp.CookieJarFromContext(req.Context())
			jar.Set("seen", "1", nil)
			return cfg.Type, nil
		}}},
	}}, mark("group"))

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil))

	// Assert
	require.Equal(t, []string{"every", "group", "route"}, calls)
	require.Equal(t, []string{"seen=1; Path=/"}, w.Header().Values("Set-Cookie"))
	require.Equal(t, "", w.Body.String())
}

func TestRouterMethodMismatch(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))
	r.Handle(router.Route{Path: "/feed", Method: http.MethodPost})

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil))

	// Assert
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterHandleNotFound(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))
	r.HandleNotFound(func(w http.ResponseWriter, req *http.Request) { panic("not found") })

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/missing", nil))

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouterPanickingHandler(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))
	r.Handle(router.Route{Path: "/feed", Handlers: []router.Handler{
		{App: "a", ID: "x", Fn: func(*http.Request) (any, error) { panic("boom") }},
	}})

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil))

	// Assert
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouterSubrouter(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))
	sub := r.Subrouter("/feeds")
	sub.Handle(router.Route{Path: "/news", Handlers: []router.Handler{{App: "a", ID: "x", Fn: router.ValueHandler("news")}}})

	host := r.SubrouterHost("dark.example.com", resp.Site{Theme: "dark"})
	host.Handle(router.Route{Path: "/feed", Handlers: []router.Handler{{App: "a", ID: "x", Fn: router.ValueHandler("dark")}}})

	tcs := []struct {
		name     string
		url      string
		code     int
		expected string
	}{
		{"Prefixed", "https://example.com/feeds/news", http.StatusOK, "news"},
		{"Host", "https://dark.example.com/feed", http.StatusOK, "dark"},
		{"Other-Host", "https://example.com/feed", http.StatusNotFound, "404 page not found\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}

func TestRouterHandleAssets(t *testing.T) {
	// Arrange
	r := newRouter(new(bytes.Buffer))
	r.HandleAssets("/assets/", http.FS(fstest.MapFS{"site.css": {Data: []byte("body{}")}}))

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/assets/site.css", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "max-age=2592000", w.Header().Get("Cache-Control"))
	require.Equal(t, "body{}", w.Body.String())
}

func TestRouterLogsFailingHandler(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	r := newRouter(b)
	r.Handle(router.Route{Path: "/feed", Handlers: []router.Handler{
		{App: "news", ID: "latest", Fn: func(*http.Request) (any, error) { return nil, errors.New("db down") }},
	}})

	// Act
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil))

	// Assert
	require.Contains(t, b.String(), "[ERROR]")
	require.Contains(t, b.String(), "handler failed")
	require.Contains(t, b.String(), `"app":"news"`)
	require.Contains(t, b.String(), "db down")
}
