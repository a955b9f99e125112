package service

import (
	"fmt"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

// AccessGuard decides whether a bearer token may invoke a role-gated
// operation. It keeps no state and never blocks.
type AccessGuard struct {
	tokens *TokenIssuer
}

func NewAccessGuard(tokens *TokenIssuer) *AccessGuard {
	return &AccessGuard{tokens: tokens}
}

// Authenticate validates rawToken and returns the identity it carries.
func (g *AccessGuard) Authenticate(rawToken string) (*domain.Identity, error) {
	token := bearerToken(rawToken)
	if token == "" {
		metrics.TokensRejectedTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	id, err := g.tokens.Parse(token)
	if err != nil {
		metrics.TokensRejectedTotal.WithLabelValues(tokenReason(err)).Inc()
		return nil, err
	}
	return id, nil
}

// Authorize authenticates rawToken and checks its role against required.
func (g *AccessGuard) Authorize(rawToken string, required ...domain.Role) (*domain.Identity, error) {
	id, err := g.Authenticate(rawToken)
	if err != nil {
		return nil, err
	}
	if err := Admit(id, required...); err != nil {
		return nil, err
	}
	return id, nil
}

// Admit checks an already authenticated identity against required.
func Admit(id *domain.Identity, required ...domain.Role) error {
	if id == nil {
		return domain.ErrUnauthenticated
	}
	if !id.Role.Admits(required...) {
		metrics.TokensRejectedTotal.WithLabelValues("role").Inc()
		return fmt.Errorf("%w: role %q not permitted", domain.ErrForbidden, id.Role)
	}
	return nil
}
