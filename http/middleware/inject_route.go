package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/publish"
	"github.com/xy-planning-network/publish/http/resp"
)

// InjectRoute stores route in the *http.Request.Context under publish.RouteKey,
// along with an empty *resp.CookieJar for handlers to set cookies on.
//
// A *resp.CookieJar already in the context is kept.
func InjectRoute(route resp.Route) Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), publish.RouteKey, route)
			if _, ok := resp.CookieJarFromContext(ctx); !ok {
				ctx = resp.NewCookieJarContext(ctx, resp.NewCookieJar())
			}

			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
