package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

type corsLogger struct{}

func (corsLogger) Printf(format string, args ...any) {
	slog.Debug("cors", "detail", fmt.Sprintf(format, args...))
}

// CORS allows browser clients from origins to call the API with bearer
// tokens. Cookies are never used, so credentials stay disabled.
func CORS(origins []string, debug bool) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Retry-After", "X-Request-ID"},
		MaxAge:         600,
	}
	if debug {
		opts.Logger = corsLogger{}
	}

	return cors.New(opts).Handler
}
