package ports

import (
	"context"
	"time"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// PasswordHasher is the one-way transform applied to secrets before storage.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashed string) bool
}

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	Encode(claims domain.Claims, ttl time.Duration) (domain.AccessToken, error)
	Decode(token string) (domain.Claims, error)
}

// TokenAuthorizer turns a raw bearer token into a request identity.
type TokenAuthorizer interface {
	Authorize(rawToken string) (domain.Identity, error)
}

// AuthService verifies credentials and issues login tokens.
type AuthService interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Principal, error)
	IssueLoginToken(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error)
}
