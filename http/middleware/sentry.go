package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/handlers"
	"github.com/xy-planning-network/publish"
)

// ReportPanic recovers panics in the handlers it wraps, responding with http.StatusInternalServerError.
//
// Outside of development and testing, the panic is reported to Sentry before recovering.
// Stack traces are printed everywhere but production.
func ReportPanic(env publish.Environment) Adapter {
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(!env.IsProduction()))
	if env.IsDevelopment() || env.IsTesting() {
		return recovery
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return recovery(sh.Handle(h))
	}
}
