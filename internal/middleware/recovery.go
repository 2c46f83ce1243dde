package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/handler"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
)

// Recovery turns a panic in any handler into the generic 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				log := logging.FromContext(r.Context())
				log.Error("panic recovered", "error", err, "stack", string(debug.Stack()))
				handler.RespondAppError(w, handler.ErrInternalError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
