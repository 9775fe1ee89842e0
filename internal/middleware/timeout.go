package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"music-catalog/internal/model"
)

const msgTimedOut = "request timed out"

// Timeout bounds handler execution. The body is written by
// http.TimeoutHandler, which always answers 503 and sets no content type, so
// the JSON type is preset on the outer writer. Handlers that set their own
// Content-Type still win because TimeoutHandler copies their headers over.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	body, err := json.Marshal(model.APIResponse{Status: http.StatusServiceUnavailable, Message: msgTimedOut})
	if err != nil {
		body = []byte(msgTimedOut)
	}

	return func(next http.Handler) http.Handler {
		bounded := http.TimeoutHandler(next, timeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			bounded.ServeHTTP(w, r)
		})
	}
}
