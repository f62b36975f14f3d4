package middleware

import (
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/logger"
)

// LogMaskVal replaces the values of scrubbed query parameters.
const LogMaskVal = "xxxxxxx"

// LogRequest logs the request's method, requested URL, and originating IP address
// using the enclosed implementation of logger.Logger,
// once the request is handled.
//
// The status code, bytes written, duration, negotiated Content-Encoding, and request ID
// are included in the log context.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(h, w, r)

			uri := r.URL.Path
			q := r.URL.Query()
			if val := q.Get("password"); val != "" {
				q.Set("password", LogMaskVal)
			}

			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			strs := []string{r.Method, uri}
			if val, ok := r.Context().Value(publish.IpAddrKey).(string); ok {
				strs = append([]string{val}, strs...)
			}

			data := map[string]any{
				"status":           m.Code,
				"bytes":            m.Written,
				"duration_ms":      m.Duration.Milliseconds(),
				"content_encoding": w.Header().Get("Content-Encoding"),
			}
			if id, ok := r.Context().Value(publish.RequestIDKey).(string); ok {
				data["request_id"] = id
			}

			ls.Info(strings.Join(strs, " "), &logger.LogContext{Data: data})
		})
	}
}
