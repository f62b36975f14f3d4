package router

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"github.com/xy-planning-network/publish"
	"gopkg.in/yaml.v3"
)

// A RoutesFile is the YAML document describing the Routes a publisher serves.
//
//	routes:
//	  - path: /news
//	    type: html
//	    stylesheet: news.xsl
//	    handlers:
//	      - app: news
//	        id: latest
//	        file: data/news.yaml
type RoutesFile struct {
	Routes []RouteConfig `yaml:"routes"`
}

// A RouteConfig is a Route as written in a RoutesFile.
type RouteConfig struct {
	Path       string          `yaml:"path"`
	Method     string          `yaml:"method"`
	Type       string          `yaml:"type"`
	Sync       bool            `yaml:"sync"`
	Stylesheet string          `yaml:"stylesheet"`
	Handlers   []HandlerConfig `yaml:"handlers"`
}

// A HandlerConfig publishes either the contents of File or Value as is.
type HandlerConfig struct {
	App   string `yaml:"app"`
	ID    string `yaml:"id"`
	File  string `yaml:"file"`
	Value any    `yaml:"value"`
}

// ParseRoutes decodes a RoutesFile from src into Routes,
// reading the files handlers publish from fsys.
//
// Unknown fields in src are an error.
func ParseRoutes(src io.Reader, fsys fs.FS) ([]Route, error) {
	dec := yaml.NewDecoder(src)
	dec.KnownFields(true)

	var rf RoutesFile
	if err := dec.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: cannot decode routes: %s", publish.ErrNotValid, err)
	}

	routes := make([]Route, len(rf.Routes))
	for i, rc := range rf.Routes {
		if rc.Path == "" {
			return nil, fmt.Errorf("%w: route %d has no path", publish.ErrMissingData, i)
		}

		route := Route{
			Path:       rc.Path,
			Method:     strings.ToUpper(rc.Method),
			Type:       rc.Type,
			Sync:       rc.Sync,
			Stylesheet: rc.Stylesheet,
		}

		for _, hc := range rc.Handlers {
			if hc.App == "" || hc.ID == "" {
				return nil, fmt.Errorf("%w: handler of %s needs an app and an id", publish.ErrMissingData, rc.Path)
			}

			fn := ValueHandler(stringKeys(hc.Value))
			if hc.File != "" {
				if fsys == nil {
					return nil, fmt.Errorf("%w: no filesystem to read %s from", publish.ErrBadConfig, hc.File)
				}
				fn = FileHandler(fsys, hc.File)
			}

			route.Handlers = append(route.Handlers, Handler{App: hc.App, ID: hc.ID, Fn: fn})
		}

		routes[i] = route
	}

	return routes, nil
}

// FileHandler publishes the YAML, or JSON, document stored in name, read anew on every request.
func FileHandler(fsys fs.FS, name string) HandlerFunc {
	return func(*http.Request) (any, error) {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", publish.ErrNotExist, name)
			}
			return nil, err
		}

		var content any
		if err := yaml.Unmarshal(b, &content); err != nil {
			return nil, fmt.Errorf("%w: cannot decode %s: %s", publish.ErrNotValid, name, err)
		}

		return stringKeys(content), nil
	}
}

// stringKeys rewrites the map[any]any yaml.v3 decodes mappings with non-string keys into,
// such as years or numeric ids, as map[string]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = stringKeys(val)
		}
		return m
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

// ValueHandler publishes v on every request.
func ValueHandler(v any) HandlerFunc {
	return func(*http.Request) (any, error) { return v, nil }
}
