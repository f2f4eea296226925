// Package middleware binds the shared HTTP middleware to the API's JSON
// error format.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/seabattle/internal/api/apierr"
	"github.com/mcoot/seabattle/internal/middleware"
)

// RequestID tags API requests with a correlation ID
func RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Recovery turns panics into a JSON 500 that carries the request ID, so a
// client report can be matched to the logged stack
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, perr *middleware.PanicError) {
		apierr.WriteError(w, apierr.NewInternalError(perr.RequestID))
	})
}
