package errors

import (
	"net/http"
)

// RecoveryMiddleware turns handler panics into 500 problem responses.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func RecoveryMiddleware(handler *ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				handler.HandlePanic(w, r, rec)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
