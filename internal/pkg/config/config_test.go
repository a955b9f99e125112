package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected 1h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("unexpected tmdb base url %q", cfg.TMDB.BaseURL)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("expected redis disabled by default, got %q", cfg.Redis.Addr)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Login.MaxFailures != 5 || cfg.Login.Lockout != 15*time.Minute {
		t.Fatalf("unexpected login config %+v", cfg.Login)
	}
	if cfg.Google.ClientID != "" || cfg.Google.Issuer != "https://accounts.google.com" ||
		cfg.Google.JWKSURL != "https://www.googleapis.com/oauth2/v3/certs" {
		t.Fatalf("unexpected google config %+v", cfg.Google)
	}
}

func TestLoadWith_RequiresSecret(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "secret",
		"TOKEN_TTL":   "30m",
		"LOCAL_USERS": "filmuser:123456:film,adminuser:123456:admin",
		"REDIS_ADDR":  "localhost:6379",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.TokenTTL)
	}
	if len(cfg.LocalUsers) != 2 || cfg.LocalUsers[1] != "adminuser:123456:admin" {
		t.Fatalf("unexpected local users %v", cfg.LocalUsers)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", cfg.Redis.Addr)
	}
}

func TestLoadWith_RejectsNonPositiveTTL(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
		"TOKEN_TTL":  "0s",
	}))
	if err == nil {
		t.Fatal("expected error for zero TOKEN_TTL")
	}
}
