// Package idtoken verifies Google-issued ID tokens against the provider JWKS.
package idtoken

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/movieportal/portal-api/internal/core/domain"
)

const (
	DefaultIssuer  = "https://accounts.google.com"
	DefaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
	defaultTimeout = 5 * time.Second
)

var errUnverifiedEmail = errors.New("email not verified")

// Config describes the trusted provider. ClientID is the expected audience.
type Config struct {
	ClientID string
	Issuer   string
	JWKSURL  string
	Timeout  time.Duration
	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

// Verifier implements ports.IdentityVerifier. Keys are fetched lazily from
// the JWKS endpoint and cached by the remote key set.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	issuers  map[string]struct{}
	timeout  time.Duration
}

// NewVerifier builds a verifier without a discovery round trip. ctx bounds
// the lifetime of background key refreshes.
func NewVerifier(ctx context.Context, cfg Config) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("oidc: client id is required")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.JWKSURL == "" {
		cfg.JWKSURL = DefaultJWKSURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
	v := oidc.NewVerifier(cfg.Issuer, keySet, &oidc.Config{
		ClientID: cfg.ClientID,
		// Google issues both the bare host and the https form.
		SkipIssuerCheck: true,
		Now:             cfg.Now,
	})

	issuers := map[string]struct{}{cfg.Issuer: {}}
	if bare := strings.TrimPrefix(cfg.Issuer, "https://"); bare != cfg.Issuer {
		issuers[bare] = struct{}{}
	}

	return &Verifier{verifier: v, issuers: issuers, timeout: cfg.Timeout}, nil
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

func (v *Verifier) Verify(ctx context.Context, rawToken string) (*domain.ExternalProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	tok, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	if _, ok := v.issuers[tok.Issuer]; !ok {
		return nil, fmt.Errorf("verify id token: unexpected issuer %q", tok.Issuer)
	}

	var c idClaims
	if err := tok.Claims(&c); err != nil {
		return nil, fmt.Errorf("decode id token claims: %w", err)
	}
	if c.EmailVerified != nil && !*c.EmailVerified {
		return nil, errUnverifiedEmail
	}

	return &domain.ExternalProfile{
		Subject: tok.Subject,
		Email:   strings.ToLower(strings.TrimSpace(c.Email)),
		Name:    c.Name,
	}, nil
}
