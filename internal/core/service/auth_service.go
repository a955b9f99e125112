package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

// AuthService authenticates callers and issues session tokens.
type AuthService struct {
	users    ports.IdentityRepository
	verifier ports.IdentityVerifier
	throttle ports.LoginThrottle
	tokens   *TokenIssuer
	log      zerolog.Logger
}

// NewAuthService wires the issuer. verifier may be nil when no external
// provider is configured; throttle may be nil to disable lockout.
func NewAuthService(
	users ports.IdentityRepository,
	verifier ports.IdentityVerifier,
	throttle ports.LoginThrottle,
	tokens *TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	if throttle == nil {
		throttle = nopThrottle{}
	}
	return &AuthService{users: users, verifier: verifier, throttle: throttle, tokens: tokens, log: log}
}

// AuthenticateLocal matches username and password against the local
// credential set.
func (s *AuthService) AuthenticateLocal(ctx context.Context, username, password string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Allow(ctx, username); err != nil {
		if errors.Is(err, domain.ErrTooManyAttempts) {
			return nil, err
		}
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle unavailable, continuing")
	}

	user, err := s.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// Spend the same time as a real comparison.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("authenticate local: %w", err)
	}

	if user.Provider != domain.ProviderLocal || user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
	}

	id := user.Identity()
	return &id, nil
}

// AuthenticateExternal verifies a third-party identity token and resolves
// the matching local identity, creating it with the provisional role on
// first use. Verification failures are not distinguished to the caller.
func (s *AuthService) AuthenticateExternal(ctx context.Context, providerToken string) (*domain.Identity, error) {
	if s.verifier == nil || strings.TrimSpace(providerToken) == "" {
		return nil, domain.ErrInvalidProviderToken
	}

	profile, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("provider token rejected")
		return nil, domain.ErrInvalidProviderToken
	}
	if profile.Email == "" {
		s.log.Debug().Str("subject", profile.Subject).Msg("provider token has no email")
		return nil, domain.ErrInvalidProviderToken
	}

	user, err := s.users.ResolveExternal(ctx, *profile, domain.ProviderGoogle, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("resolve external identity: %w", err)
	}

	id := user.Identity()
	return &id, nil
}

// IssueToken signs a session token for id.
func (s *AuthService) IssueToken(id domain.Identity) (domain.SessionToken, error) {
	return s.tokens.Issue(id)
}

// Login authenticates local credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	id, err := s.AuthenticateLocal(ctx, username, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.ProviderLocal, loginResult(err)).Inc()
		return nil, err
	}
	return s.finishLogin(domain.ProviderLocal, id)
}

// LoginExternal authenticates a provider token and issues a token.
func (s *AuthService) LoginExternal(ctx context.Context, providerToken string) (*ports.LoginResult, error) {
	id, err := s.AuthenticateExternal(ctx, providerToken)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(domain.ProviderGoogle, loginResult(err)).Inc()
		return nil, err
	}
	return s.finishLogin(domain.ProviderGoogle, id)
}

func (s *AuthService) finishLogin(provider string, id *domain.Identity) (*ports.LoginResult, error) {
	token, err := s.IssueToken(*id)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(provider, "error").Inc()
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(provider, "success").Inc()
	s.log.Info().
		Str("username", id.Username).
		Str("role", id.Role.String()).
		Str("provider", provider).
		Msg("session issued")

	return &ports.LoginResult{Token: token, User: *id}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidProviderToken):
		return "rejected"
	default:
		return "error"
	}
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}

type nopThrottle struct{}

func (nopThrottle) Allow(context.Context, string) error         { return nil }
func (nopThrottle) RecordFailure(context.Context, string) error { return nil }
func (nopThrottle) Reset(context.Context, string) error         { return nil }

// ParseLocalUsers decodes "username:password:role" entries.
func ParseLocalUsers(entries []string) ([]LocalUser, error) {
	users := make([]LocalUser, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		// The username ends at the first colon and the role starts after the
		// last one, so passwords may contain colons.
		first, last := strings.Index(e, ":"), strings.LastIndex(e, ":")
		if first <= 0 || last == first || last-first == 1 {
			return nil, fmt.Errorf("local user %q: want username:password:role", e)
		}
		username, password := e[:first], e[first+1:last]
		role, err := domain.ParseRole(e[last+1:])
		if err != nil {
			return nil, fmt.Errorf("local user %q: %w", username, err)
		}
		users = append(users, LocalUser{Username: username, Password: password, Role: role})
	}
	return users, nil
}

// LocalUser is a seeded username/password account.
type LocalUser struct {
	Username string
	Password string
	Role     domain.Role
}

// SeedLocalUsers hashes and stores the local credential set.
func SeedLocalUsers(ctx context.Context, repo ports.IdentityRepository, users []LocalUser, cost int) error {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	now := time.Now().UTC()
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		if _, err := repo.Create(ctx, &domain.User{
			Username:     u.Username,
			PasswordHash: string(hash),
			Role:         u.Role,
			Provider:     domain.ProviderLocal,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("seed %s: %w", u.Username, err)
		}
	}
	return nil
}
