package resp

import (
	"io"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
)

var _ Transport = (*HTTPTransport)(nil)

// A Transport is where a Response writes its head and then its body.
type Transport interface {
	// HeadersSent reports whether the status code and headers have been written.
	HeadersSent() bool

	// WriteHead writes the status code and headers.
	WriteHead(code int, headers map[string]string)

	io.Writer
}

// HTTPTransport implements Transport over an http.ResponseWriter.
type HTTPTransport struct {
	w    http.ResponseWriter
	sent bool
}

// NewTransport wraps w so that any write of the head through it,
// whether by the Transport or not, is observed by HeadersSent.
func NewTransport(w http.ResponseWriter) *HTTPTransport {
	if t, ok := w.(*HTTPTransport); ok {
		return t
	}

	t := new(HTTPTransport)
	t.w = httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				t.sent = true
				next(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				t.sent = true
				return next(b)
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				t.sent = true
				return next(src)
			}
		},
	})

	return t
}

// Header returns the header map of the wrapped http.ResponseWriter.
func (t *HTTPTransport) Header() http.Header { return t.w.Header() }

// HeadersSent reports whether the head was written.
func (t *HTTPTransport) HeadersSent() bool { return t.sent }

// Write writes the body.
func (t *HTTPTransport) Write(b []byte) (int, error) { return t.w.Write(b) }

// WriteHeader writes the status code with whatever headers are set on Header.
func (t *HTTPTransport) WriteHeader(code int) { t.w.WriteHeader(code) }

// WriteHead sets headers on the wrapped http.ResponseWriter, then writes the status code.
//
// Each line of a set-cookie value becomes its own Set-Cookie header.
func (t *HTTPTransport) WriteHead(code int, headers map[string]string) {
	h := t.w.Header()
	for k, v := range headers {
		if k == headerSetCookie {
			for _, line := range strings.Split(v, "\n") {
				if line != "" {
					h.Add(k, line)
				}
			}
			continue
		}
		h.Set(k, v)
	}

	t.w.WriteHeader(code)
}

// Flush sends any buffered body bytes to the client.
func (t *HTTPTransport) Flush() {
	if f, ok := t.w.(http.Flusher); ok {
		f.Flush()
	}
}
