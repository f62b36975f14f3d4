package resp

import (
	"net/http"
	"strings"
)

const (
	headerContentEncoding = "content-encoding"
	headerContentType     = "content-type"
	headerSetCookie       = "set-cookie"
)

// Metadata is the status code and headers of a Response.
//
// Header names are case-insensitive and hold a single value.
type Metadata struct {
	code    int
	headers map[string]string
}

// NewMetadata constructs a *Metadata with the status code http.StatusOK and no headers.
func NewMetadata() *Metadata {
	return &Metadata{code: http.StatusOK, headers: make(map[string]string)}
}

// StatusCode returns the status code to respond with.
func (m *Metadata) StatusCode() int { return m.code }

// SetStatusCode replaces the status code.
// A zero code leaves the status code as is.
func (m *Metadata) SetStatusCode(code int) *Metadata {
	if code != 0 {
		m.code = code
	}
	return m
}

// Header returns the value set for name.
func (m *Metadata) Header(name string) string {
	return m.headers[strings.ToLower(name)]
}

// SetHeader sets the value for name.
//
// An empty value leaves any existing value in place; use UnsetHeader to remove a header.
func (m *Metadata) SetHeader(name, value string) *Metadata {
	if value == "" {
		return m
	}
	m.headers[strings.ToLower(name)] = value
	return m
}

// UnsetHeader removes the value set for name.
func (m *Metadata) UnsetHeader(name string) *Metadata {
	delete(m.headers, strings.ToLower(name))
	return m
}

// Headers returns a copy of all headers set.
func (m *Metadata) Headers() map[string]string {
	cp := make(map[string]string, len(m.headers))
	for k, v := range m.headers {
		cp[k] = v
	}
	return cp
}

// Flush writes the status code and headers to t, unless t reports they were already sent.
//
// Before writing, Flush fills in Content-Encoding and Content-Type from n when not already set
// and Set-Cookie from c when it has cookies.
//
// Flush reports whether it wrote to t.
func (m *Metadata) Flush(t Transport, n Negotiation, c Cookies) bool {
	if t.HeadersSent() {
		return false
	}

	if m.Header(headerContentEncoding) == "" {
		m.SetHeader(headerContentEncoding, n.Encoding.String())
	}

	if m.Header(headerContentType) == "" {
		m.SetHeader(headerContentType, ContentType(n.Format))
	}

	if c != nil {
		m.SetHeader(headerSetCookie, c.SetCookieString())
	}

	t.WriteHead(m.code, m.Headers())
	return true
}
