package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
)

// CORS allows the configured browser origins to call the API with a bearer
// token.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	return echo.WrapMiddleware(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// RateLimitByIP caps requests per client address over window. Requests over
// the limit receive 429 with the standard error envelope.
func RateLimitByIP(limit int, window time.Duration) echo.MiddlewareFunc {
	return echo.WrapMiddleware(httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"too many requests"}`))
		}),
	))
}
