package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/movieportal/portal-api/internal/api/handler"
	"github.com/movieportal/portal-api/internal/api/middleware"
	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/infrastructure/http/handlers"
)

const defaultLoginRatePerMinute = 30

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Guard    ports.Guard
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Reviews  ports.ReviewService
	Feedback ports.FeedbackService

	// Redis is optional and only used by the readiness probe.
	Redis    *redis.Client
	Upstream handlers.BreakerState

	CORSOrigins        []string
	LoginRatePerMinute int
	SwaggerEnabled     bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP metrics go to a per-router registry so several routers can live
	// in one process; /metrics gathers it together with the default one.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Pre(middleware.CORS(d.CORSOrigins))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "movieportal",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authRequired := middleware.Auth(d.Guard)
	filmRoles := middleware.RBAC(domain.RoleFilm, domain.RoleAdmin)
	actorRoles := middleware.RBAC(domain.RoleActor, domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth)
	filmHandler := handler.NewFilmHandler(d.Catalog, d.Reviews)
	actorHandler := handler.NewActorHandler(d.Catalog)
	feedbackHandler := handler.NewFeedbackHandler(d.Feedback)

	rate := d.LoginRatePerMinute
	if rate <= 0 {
		rate = defaultLoginRatePerMinute
	}

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth", middleware.RateLimitByIP(rate, time.Minute))
	auth.POST("/login", authHandler.Login)
	auth.POST("/google-token", authHandler.GoogleToken)
	auth.GET("/me", authHandler.Me, authRequired)

	// --- Film routes ---
	film := api.Group("/film", authRequired)
	film.GET("/popular", filmHandler.Popular, filmRoles)
	film.GET("/search", filmHandler.Search, filmRoles)
	film.GET("/:id", filmHandler.Get, filmRoles)
	film.GET("/:id/reviews", filmHandler.Reviews, filmRoles)
	film.POST("/:id/review", filmHandler.SubmitReview, filmRoles)
	film.POST("/:id/feedback", feedbackHandler.Feedback)
	film.POST("/suggest", feedbackHandler.Suggest)

	api.POST("/suggest", feedbackHandler.Suggest, authRequired)

	// --- Actor routes ---
	actor := api.Group("/actor", authRequired, actorRoles)
	actor.GET("/popular", actorHandler.Popular)
	actor.GET("/search", actorHandler.Search)
	actor.GET("/:id", actorHandler.Get)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Redis, d.Upstream)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))

	if d.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= 500:
				ev = log.Error().Err(v.Error)
			case v.Error != nil:
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
