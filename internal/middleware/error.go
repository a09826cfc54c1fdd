package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// panicResponse matches the error shape the handlers emit, so a recovered
// panic looks like any other server error to the frontend.
type panicResponse struct {
	StatusMessage string `json:"statusMessage"`
}

// ErrorHandler recovers panics, logs them server-side, and answers with a
// generic 500. Panic details never reach the client.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic_recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if encErr := json.NewEncoder(w).Encode(panicResponse{StatusMessage: "An unexpected error occurred"}); encErr != nil {
						logger.Error("failed_to_encode_error_response",
							zap.Error(encErr),
							zap.String("path", r.URL.Path),
						)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
