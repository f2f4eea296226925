package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicError is what a recovered handler panic is turned into
type PanicError struct {
	Value     any
	RequestID string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic serving request %s: %v", e.RequestID, e.Value)
}

// PanicHandler writes the error response after a recovered panic
type PanicHandler func(w http.ResponseWriter, r *http.Request, err *PanicError)

// Recovery turns handler panics into error responses
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				// the server relies on this panic to abort the response
				if v == http.ErrAbortHandler {
					panic(v)
				}

				perr := &PanicError{Value: v, RequestID: RequestIDFromContext(r.Context())}
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("error", perr.Error()),
					slog.String("request_id", perr.RequestID),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				handler(w, r, perr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// DefaultPanicHandler returns a plain 500
func DefaultPanicHandler(w http.ResponseWriter, _ *http.Request, _ *PanicError) {
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
