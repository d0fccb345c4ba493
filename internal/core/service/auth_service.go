package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// DefaultAccessTokenTTL is the login token lifetime when none is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// dummySecret is hashed once at construction so unknown or empty identities still pay
// for a bcrypt comparison.
const dummySecret = "marketplace-api/unknown-principal"

// AuthService verifies customer and seller credentials and issues access tokens.
type AuthService struct {
	customers ports.CustomerRepository
	sellers   ports.SellerRepository
	hasher    ports.PasswordHasher
	codec     ports.TokenCodec
	tokenTTL  time.Duration
	audit     ports.AuditSink
	logger    zerolog.Logger
	now       func() time.Time
	dummyHash string
}

// NewAuthService wires an AuthService. audit may be nil.
func NewAuthService(
	customers ports.CustomerRepository,
	sellers ports.SellerRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	tokenTTL time.Duration,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultAccessTokenTTL
	}
	dummy, err := hasher.Hash(dummySecret)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to prepare dummy password hash")
	}
	return &AuthService{
		customers: customers,
		sellers:   sellers,
		hasher:    hasher,
		codec:     codec,
		tokenTTL:  tokenTTL,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
		dummyHash: dummy,
	}
}

// Authenticate looks up the principal for creds.Role by exact email and checks
// the secret. Unknown identity and wrong secret both yield
// domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	principal, err := s.authenticate(ctx, creds)
	s.record(creds, principal, err)
	return principal, err
}

func (s *AuthService) authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error) {
	if creds.Identity == "" || creds.Secret == "" {
		s.hasher.Verify(creds.Secret, s.dummyHash)
		return domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal, err := s.lookup(ctx, creds.Identity, creds.Role)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		s.hasher.Verify(creds.Secret, s.dummyHash)
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Principal{}, fmt.Errorf("authenticate %s: %w", creds.Role, err)
	}

	if !s.hasher.Verify(creds.Secret, principal.PasswordHash) {
		return domain.Principal{}, domain.ErrInvalidCredentials
	}
	return principal, nil
}

func (s *AuthService) lookup(ctx context.Context, email string, role domain.Role) (domain.Principal, error) {
	if role.IsSeller() {
		seller, err := s.sellers.FindByEmail(ctx, email)
		if err != nil {
			return domain.Principal{}, err
		}
		return seller.Principal(), nil
	}
	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		return domain.Principal{}, err
	}
	return customer.Principal(), nil
}

// IssueLoginToken authenticates creds and returns a signed access token whose
// claims carry the principal's email, id and the requested role.
func (s *AuthService) IssueLoginToken(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	principal, err := s.Authenticate(ctx, creds)
	if err != nil {
		return domain.AccessToken{}, err
	}

	token, err := s.codec.Encode(domain.Claims{
		Subject:     principal.Email,
		PrincipalID: principal.ID,
		Role:        creds.Role,
	}, s.tokenTTL)
	if err != nil {
		s.logger.Error().Err(err).Int64("principal_id", principal.ID).Msg("failed to issue access token")
		return domain.AccessToken{}, err
	}

	s.logger.Info().
		Int64("principal_id", principal.ID).
		Str("role", string(creds.Role)).
		Time("expires_at", token.ExpiresAt).
		Msg("access token issued")
	return token, nil
}

func (s *AuthService) record(creds domain.Credentials, principal domain.Principal, err error) {
	if s.audit == nil {
		return
	}
	event := domain.AuthEvent{
		Identity:   strings.ToLower(creds.Identity),
		Role:       creds.Role,
		OccurredAt: s.now().UTC(),
	}
	switch {
	case err == nil:
		event.Outcome = domain.LoginSucceeded
		event.PrincipalID = principal.ID
	case errors.Is(err, domain.ErrInvalidCredentials):
		event.Outcome = domain.LoginRejected
	default:
		event.Outcome = domain.LoginErrored
	}
	s.audit.Record(event)
}
