package httpx

import (
	"net/http"

	"go.uber.org/zap"
)

// RecoveryMiddleware turns a panic into a 500 envelope. It sits outside the
// request ID middleware, so the ID is read back from the response header.
func RecoveryMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.Named("recovery")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrapResponseWriter(w)
			defer func() {
				if err := recover(); err != nil {
					requestID := rw.Header().Get(requestIDHeader)
					logger.Error("panic recovered",
						zap.String("request_id", requestID),
						zap.Any("panic", err),
						zap.StackSkip("stack", 1),
					)

					if !rw.wroteHeader() {
						r = r.WithContext(ContextWithRequestID(r.Context(), requestID))
						JSONError(rw, r, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", nil)
					}
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
