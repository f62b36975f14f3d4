package resp

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/xy-planning-network/publish"
)

var _ Cookies = (*CookieJar)(nil)

// Cookies serializes the cookies a Response sets.
type Cookies interface {
	// SetCookieString returns the Set-Cookie values, one per line,
	// or an empty string when no cookies are set.
	SetCookieString() string
}

// A CookieJar collects cookies to set on a response.
// Setting a cookie with a name already in the CookieJar replaces it.
type CookieJar struct {
	cookies []*http.Cookie
}

// NewCookieJar constructs an empty *CookieJar.
func NewCookieJar() *CookieJar { return new(CookieJar) }

// NewCookieJarContext stores jar in ctx.
func NewCookieJarContext(ctx context.Context, jar *CookieJar) context.Context {
	return context.WithValue(ctx, publish.CookiesKey, jar)
}

// CookieJarFromContext retrieves the *CookieJar stored in ctx.
func CookieJarFromContext(ctx context.Context) (*CookieJar, bool) {
	jar, ok := ctx.Value(publish.CookiesKey).(*CookieJar)
	return jar, ok
}

// Add puts c in the jar.
func (j *CookieJar) Add(c *http.Cookie) *CookieJar {
	if c == nil {
		return j
	}

	for i, existing := range j.cookies {
		if existing.Name == c.Name {
			j.cookies[i] = c
			return j
		}
	}

	j.cookies = append(j.cookies, c)
	return j
}

// Set builds a cookie from name, value and opts and puts it in the jar.
//
// If opts is nil, the cookie applies to the path "/".
func (j *CookieJar) Set(name, value string, opts *sessions.Options) *CookieJar {
	if opts == nil {
		opts = &sessions.Options{Path: "/"}
	}
	return j.Add(sessions.NewCookie(name, value, opts))
}

// Expire puts a cookie in the jar instructing the client to delete the named cookie.
func (j *CookieJar) Expire(name string) *CookieJar {
	return j.Set(name, "", &sessions.Options{Path: "/", MaxAge: -1})
}

// SetCookieString serializes every valid cookie in the jar, one per line.
func (j *CookieJar) SetCookieString() string {
	lines := make([]string, 0, len(j.cookies))
	for _, c := range j.cookies {
		if s := c.String(); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}
