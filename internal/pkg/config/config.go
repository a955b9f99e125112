package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=1h"`

	// LocalUsers holds "username:password:role" entries.
	LocalUsers     []string `env:"LOCAL_USERS"`
	SwaggerEnabled bool     `env:"SWAGGER_ENABLED, default=false"`

	TMDB     TMDBConfig
	Google   GoogleConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Login    LoginConfig
	Feedback FeedbackConfig
}

type TMDBConfig struct {
	BaseURL  string        `env:"TMDB_BASE_URL,    default=https://api.themoviedb.org/3"`
	APIKey   string        `env:"TMDB_API_KEY"`
	Language string        `env:"TMDB_LANGUAGE,    default=en-US"`
	Timeout  time.Duration `env:"UPSTREAM_TIMEOUT, default=10s"`
}

type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
	Issuer   string `env:"OIDC_ISSUER,   default=https://accounts.google.com"`
	JWKSURL  string `env:"OIDC_JWKS_URL, default=https://www.googleapis.com/oauth2/v3/certs"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173,https://accounts.google.com"`
}

// RedisConfig is optional; an empty Addr disables the login throttle.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxFailures   int           `env:"LOGIN_MAX_FAILURES,    default=5"`
	Lockout       time.Duration `env:"LOGIN_LOCKOUT,         default=15m"`
	RatePerMinute int           `env:"LOGIN_RATE_PER_MINUTE, default=30"`
}

type FeedbackConfig struct {
	Workers int `env:"FEEDBACK_WORKERS, default=4"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a local .env file when present, then configuration from
// environment variables using go-envconfig.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("config: failed to read .env: %v", err))
	}

	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return &cfg, nil
}
