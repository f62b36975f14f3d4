package router_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/router"
)

const routesYAML = `
routes:
  - path: /news
    type: xml
    handlers:
      - app: news
        id: latest
        file: data/news.yaml
      - app: news
        id: title
        value: Today
  - path: /ping
    method: head
`

func TestParseRoutes(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"data/news.yaml": {Data: []byte("- headline: Rain\n- headline: Sun\n")},
	}

	// Act
	routes, err := router.ParseRoutes(strings.NewReader(routesYAML), fsys)

	// Assert
	require.Nil(t, err)
	require.Len(t, routes, 2)
	require.Equal(t, "/news", routes[0].Path)
	require.Equal(t, "xml", routes[0].Config().Type)
	require.Len(t, routes[0].Handlers, 2)
	require.Equal(t, http.MethodHead, routes[1].Method)

	latest, err := routes[0].Handlers[0].Fn(nil)
	require.Nil(t, err)
	require.Equal(t, []any{
		map[string]any{"headline": "Rain"},
		map[string]any{"headline": "Sun"},
	}, latest)

	title, err := routes[0].Handlers[1].Fn(nil)
	require.Nil(t, err)
	require.Equal(t, "Today", title)
}

func TestParseRoutesServed(t *testing.T) {
	// Arrange
	fsys := fstest.MapFS{
		"data/news.yaml": {Data: []byte("- headline: Rain\n- headline: Sun\n")},
	}
	routes, err := router.ParseRoutes(strings.NewReader(routesYAML), fsys)
	require.Nil(t, err)

	r := newRouter(new(bytes.Buffer))
	r.HandleRoutes(routes)

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com/news", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		"<?xml version=\"1.0\"?>\n<data><news>"+
			"<latest><node-0><headline>Rain</headline></node-0><node-1><headline>Sun</headline></node-1></latest>"+
			"<title>Today</title>"+
			"</news></data>",
		w.Body.String(),
	)
}

func TestParseRoutesErrors(t *testing.T) {
	tcs := []struct {
		name     string
		yaml     string
		expected error
	}{
		{"Unknown-Field", "routes:\n  - path: /x\n    colour: red\n", publish.ErrNotValid},
		{"No-Path", "routes:\n  - type: xml\n", publish.ErrMissingData},
		{"No-Handler-ID", "routes:\n  - path: /x\n    handlers:\n      - app: a\n", publish.ErrMissingData},
		{"No-FS", "routes:\n  - path: /x\n    handlers:\n      - {app: a, id: b, file: c.yaml}\n", publish.ErrBadConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := router.ParseRoutes(strings.NewReader(tc.yaml), nil)
			require.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestParseRoutesEmpty(t *testing.T) {
	routes, err := router.ParseRoutes(strings.NewReader(""), nil)
	require.Nil(t, err)
	require.Empty(t, routes)
}

func TestFileHandler(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.json":  {Data: []byte(`{"a": [1, 2]}`)},
		"bad.yaml": {Data: []byte("a: [1, 2")},
	}

	t.Run("JSON", func(t *testing.T) {
		actual, err := router.FileHandler(fsys, "ok.json")(nil)
		require.Nil(t, err)
		require.Equal(t, map[string]any{"a": []any{1, 2}}, actual)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := router.FileHandler(fsys, "missing.yaml")(nil)
		require.ErrorIs(t, err, publish.ErrNotExist)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := router.FileHandler(fsys, "bad.yaml")(nil)
		require.ErrorIs(t, err, publish.ErrNotValid)
	})
}

func TestFileHandlerNumericKeys(t *testing.T) {
	fsys := fstest.MapFS{
		"data/years.yaml": {Data: []byte("2023: alpha\n2024:\n  7: beta\n")},
	}
	src := `
routes:
  - path: /years.xml
    type: xml
    handlers:
      - {app: archive, id: years, file: data/years.yaml}
  - path: /years.json
    type: json
    handlers:
      - {app: archive, id: years, file: data/years.yaml}
  - path: /ids.json
    type: json
    handlers:
      - app: archive
        id: ids
        value: {1: one}
`
	routes, err := router.ParseRoutes(strings.NewReader(src), fsys)
	require.Nil(t, err)

	r := newRouter(new(bytes.Buffer))
	r.HandleRoutes(routes)

	tcs := []struct {
		name     string
		path     string
		expected string
	}{
		{
			"XML",
			"/years.xml",
			"<?xml version=\"1.0\"?>\n<data><archive><years>" +
				"<node-2023>alpha</node-2023><node-2024><node-7>beta</node-7></node-2024>" +
				"</years></archive></data>",
		},
		{"JSON", "/years.json", `[{"2023":"alpha","2024":{"7":"beta"}}]` + "\n"},
		{"Value", "/ids.json", `[{"1":"one"}]` + "\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+tc.path, nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.expected, w.Body.String())
		})
	}
}
