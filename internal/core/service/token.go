package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// Claim names used by earlier clients of this API. They are accepted on
// decode only and never written.
const (
	legacyRoleClaimWS   = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	legacyRoleClaimSOAP = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/role"
	legacyNameClaimSOAP = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
)

const defaultTokenTTL = time.Hour

// sessionClaims is the JWT payload of a session token.
type sessionClaims struct {
	Role string `json:"role,omitempty"`
	Name string `json:"name,omitempty"`

	LegacyRoleWS   string `json:"http://schemas.microsoft.com/ws/2008/06/identity/claims/role,omitempty"`
	LegacyRoleSOAP string `json:"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/role,omitempty"`
	LegacyName     string `json:"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name,omitempty"`

	jwt.RegisteredClaims
}

// identity normalizes the canonical and legacy claim names into an Identity.
func (c *sessionClaims) identity() (*domain.Identity, error) {
	subject := c.Subject
	if subject == "" {
		subject = c.LegacyName
	}
	if subject == "" {
		return nil, errors.New("token has no subject")
	}

	raw := c.Role
	for _, alias := range []string{c.LegacyRoleWS, c.LegacyRoleSOAP} {
		if raw != "" {
			break
		}
		raw = alias
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return nil, err
	}

	return &domain.Identity{Username: subject, Role: role, DisplayName: c.Name}, nil
}

// TokenIssuer signs and verifies HS256 session tokens with a process-wide key.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// TTL returns the fixed lifetime of issued tokens.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// Issue signs a token for id. It has no side effects.
func (t *TokenIssuer) Issue(id domain.Identity) (domain.SessionToken, error) {
	issuedAt := t.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(t.ttl)

	claims := sessionClaims{
		Role: id.Role.String(),
		Name: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return domain.SessionToken{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.SessionToken{Value: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Parse verifies signature and expiry and decodes the identity. Every
// failure wraps domain.ErrUnauthenticated.
func (t *TokenIssuer) Parse(raw string) (*domain.Identity, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	id, err := claims.identity()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return id, nil
}

// tokenReason classifies a rejection for metrics.
func tokenReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}

// bearerToken strips an optional "Bearer " prefix.
func bearerToken(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
