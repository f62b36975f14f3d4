package resp_test

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/xy-planning-network/publish/http/resp"
	"github.com/xy-planning-network/publish/logger"
)

// testTransport records what a Response writes to it.
type testTransport struct {
	sent    bool
	heads   int
	code    int
	headers map[string]string
	body    bytes.Buffer
}

func (t *testTransport) HeadersSent() bool { return t.sent }

func (t *testTransport) WriteHead(code int, headers map[string]string) {
	t.sent = true
	t.heads++
	t.code = code
	t.headers = headers
}

func (t *testTransport) Write(b []byte) (int, error) { return t.body.Write(b) }

type testCookies string

func (c testCookies) SetCookieString() string { return string(c) }

type resolverFunc func(theme, sheet string) (string, error)

func (fn resolverFunc) Resolve(theme, sheet string) (string, error) { return fn(theme, sheet) }

func newLogger(b *bytes.Buffer) logger.Logger {
	var w io.Writer = io.Discard
	if b != nil {
		w = b
	}
	return logger.New(logger.WithLogger(log.New(w, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func newRequest(acceptEncoding ...string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "https://example.com/feed", nil)
	for _, val := range acceptEncoding {
		r.Header.Add("Accept-Encoding", val)
	}
	return r.WithContext(context.Background())
}

func newContext(t resp.Transport, r *http.Request, opts ...resp.ContextOptFn) *resp.HTTPContext {
	return resp.NewContext(nil, r, append([]resp.ContextOptFn{resp.WithTransport(t)}, opts...)...)
}
