package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/publish"
)

// ForceHTTPS redirects HTTP requests to HTTPS if the environment is not development.
//
// A request counts as HTTPS when served over TLS
// or when the "X-Forwarded-Proto" header says so, as it does behind a proxy.
//
// Requests other than GET and HEAD are refused with http.StatusForbidden rather than redirected.
func ForceHTTPS(env publish.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				handler.ServeHTTP(w, r)
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			u := new(url.URL)
			*u = *r.URL
			u.Scheme = "https"
			u.Host = r.Host

			http.Redirect(w, r, u.String(), http.StatusPermanentRedirect)
		})
	}
}
