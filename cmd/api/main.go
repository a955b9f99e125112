// Package main is the entry point for the movie portal API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/movieportal/portal-api/docs"
	"github.com/movieportal/portal-api/internal/api"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/core/service"
	redisdb "github.com/movieportal/portal-api/internal/infrastructure/db/redis"
	"github.com/movieportal/portal-api/internal/infrastructure/idtoken"
	"github.com/movieportal/portal-api/internal/infrastructure/memory"
	"github.com/movieportal/portal-api/internal/infrastructure/queue"
	"github.com/movieportal/portal-api/internal/infrastructure/tmdb"
	"github.com/movieportal/portal-api/internal/pkg/config"
	"github.com/movieportal/portal-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Movie Portal API
// @version 1.0
// @description Backend-for-frontend for the movie portal: TMDB proxy, role-based sessions and film reviews.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portal-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Identity ---
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	guard := service.NewAccessGuard(tokens)

	identities := memory.NewIdentityRepository()
	localUsers, err := service.ParseLocalUsers(cfg.LocalUsers)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid LOCAL_USERS")
	}
	if err := service.SeedLocalUsers(ctx, identities, localUsers, 0); err != nil {
		log.Fatal().Err(err).Msg("failed to seed local users")
	}
	if len(localUsers) == 0 {
		log.Warn().Msg("no local users configured; password login will always fail")
	}

	var verifier ports.IdentityVerifier
	if cfg.Google.ClientID != "" {
		v, err := idtoken.NewVerifier(ctx, idtoken.Config{
			ClientID: cfg.Google.ClientID,
			Issuer:   cfg.Google.Issuer,
			JWKSURL:  cfg.Google.JWKSURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build google token verifier")
		}
		verifier = v
	} else {
		log.Warn().Msg("GOOGLE_CLIENT_ID not set; google login disabled")
	}

	var (
		rdb      *goredis.Client
		throttle ports.LoginThrottle
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Login.MaxFailures, cfg.Login.Lockout)
	}

	authService := service.NewAuthService(identities, verifier, throttle, tokens, logger.Component("auth"))

	// --- Catalog & reviews ---
	if cfg.TMDB.APIKey == "" {
		log.Warn().Msg("TMDB_API_KEY not set; upstream requests will be rejected by the provider")
	}
	upstream := tmdb.NewBreakerCatalog(tmdb.NewClient(tmdb.Config{
		BaseURL:  cfg.TMDB.BaseURL,
		APIKey:   cfg.TMDB.APIKey,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.TMDB.Timeout,
	}), tmdb.DefaultBreakerSettings(), logger.Component("tmdb"))

	reviewService := service.NewReviewService(memory.NewReviewRepository(), logger.Component("reviews"))
	catalogService := service.NewCatalogService(upstream, reviewService, logger.Component("catalog"))

	// --- Feedback ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Feedback.Workers, queue.NewLogSink(logger.Component("feedback")), log)
	dispatcher.Start(workerCtx)
	feedbackService := service.NewFeedbackService(dispatcher, logger.Component("feedback"))

	e := api.NewRouter(api.Deps{
		Log:                log,
		Guard:              guard,
		Auth:               authService,
		Catalog:            catalogService,
		Reviews:            reviewService,
		Feedback:           feedbackService,
		Redis:              rdb,
		Upstream:           upstream,
		CORSOrigins:        cfg.CORS.AllowedOrigins,
		LoginRatePerMinute: cfg.Login.RatePerMinute,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting movie portal api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	cancelWorkers()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}
