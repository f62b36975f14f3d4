package stylesheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
)

const (
	settingsFile = "settings.json"
	templatesDir = "templates"
)

// Settings is the part of a theme's settings.json the Resolver reads.
type Settings struct {
	Inherits string `json:"inherits"`
}

// A Resolver maps a theme and stylesheet name to the path of a stylesheet file.
type Resolver struct {
	basePath string

	// Filesystem rooted at basePath used to probe for stylesheets
	fsys fs.FS

	// A cache of parsed settings.json files, keyed by theme.
	// Nothing removes entries from the cache.
	settings map[string]Settings
	mu       sync.Mutex
}

// NewResolver constructs a *Resolver for themes found under basePath.
//
// If fsys is nil, the operating system's filesystem rooted at basePath is probed.
// Otherwise, fsys must be rooted at basePath.
func NewResolver(basePath string, fsys fs.FS) *Resolver {
	basePath = strings.TrimSuffix(basePath, "/")
	if fsys == nil {
		root := basePath
		if root == "" {
			root = "."
		}
		fsys = os.DirFS(root)
	}

	return &Resolver{
		basePath: basePath,
		fsys:     fsys,
		settings: make(map[string]Settings),
	}
}

// BasePath returns the directory themes are looked up in.
func (r *Resolver) BasePath() string { return r.basePath }

// Resolve returns the path to sheet for theme.
//
// Resolve uses the following strategy:
//   - use <base>/templates/<theme>/<sheet> if it exists
//   - otherwise, use <base>/templates/<inherits>/<sheet>,
//     where inherits comes from <base>/templates/<theme>/settings.json
//
// The inherited path is returned whether or not it exists;
// a missing stylesheet surfaces when the stylesheet is applied.
// If the theme declares no parent, the candidate path returns unchanged.
//
// An error only returns if the theme's settings.json cannot be read or parsed.
func (r *Resolver) Resolve(theme, sheet string) (string, error) {
	if theme == "" {
		return "", fmt.Errorf("%w: cannot resolve %q", ErrNoTheme, sheet)
	}

	candidate := r.path(theme, sheet)
	if r.exists(theme, sheet) {
		return candidate, nil
	}

	s, err := r.themeSettings(theme)
	if err != nil {
		return "", err
	}

	if s.Inherits == "" {
		return candidate, nil
	}

	return r.path(s.Inherits, sheet), nil
}

// exists probes the filesystem for the stylesheet.
func (r *Resolver) exists(theme, sheet string) bool {
	info, err := fs.Stat(r.fsys, path.Join(templatesDir, theme, sheet))
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// path joins the parts of a stylesheet location onto the base path.
func (r *Resolver) path(theme, sheet string) string {
	return strings.Join([]string{r.basePath, templatesDir, theme, sheet}, "/")
}

// themeSettings reads the settings.json for theme, caching it on success.
func (r *Resolver) themeSettings(theme string) (Settings, error) {
	r.mu.Lock()
	s, ok := r.settings[theme]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	fp := path.Join(templatesDir, theme, settingsFile)
	b, err := fs.ReadFile(r.fsys, fp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("%w: %s", ErrNoSettings, r.path(theme, settingsFile))
		}
		return Settings{}, fmt.Errorf("unable to read %s: %w", fp, err)
	}

	if err := json.Unmarshal(b, &s); err != nil {
		return Settings{}, fmt.Errorf("%w: cannot parse %s: %s", ErrNoSettings, fp, err)
	}

	r.mu.Lock()
	r.settings[theme] = s
	r.mu.Unlock()

	return s, nil
}
