package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/xy-planning-network/publish"
)

// RequestID adds a uuid to the request context under publish.RequestIDKey.
//
// An incoming "X-Request-Id" header is kept, if it parses as a uuid.
// The ID is echoed back on the response in that same header.
func RequestID() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), publish.RequestIDKey, id)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

const requestIDHeader = "X-Request-Id"
