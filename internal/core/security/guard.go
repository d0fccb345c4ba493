package security

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// Guard turns bearer tokens into request identities.
type Guard struct {
	codec    ports.TokenCodec
	log      zerolog.Logger
	onReject func(reason string)
}

// GuardOption customises a Guard.
type GuardOption func(*Guard)

// WithRejectHook registers fn to observe the internal reason ("expired" or
// "invalid") of every rejected token.
func WithRejectHook(fn func(reason string)) GuardOption {
	return func(g *Guard) { g.onReject = fn }
}

// NewGuard returns a Guard that verifies tokens with codec.
func NewGuard(codec ports.TokenCodec, log zerolog.Logger, opts ...GuardOption) *Guard {
	g := &Guard{codec: codec, log: log}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Authorize decodes rawToken as given. Every failure, expired or forged,
// collapses into domain.ErrUnauthorized.
func (g *Guard) Authorize(rawToken string) (domain.Identity, error) {
	claims, err := g.codec.Decode(rawToken)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, domain.ErrTokenExpired) {
			reason = "expired"
		}
		g.log.Debug().Err(err).Str("reason", reason).Msg("token rejected")
		if g.onReject != nil {
			g.onReject(reason)
		}
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return domain.IdentityFromClaims(claims), nil
}

// RequireRole fails with domain.ErrForbidden unless id holds role.
func RequireRole(id domain.Identity, role domain.Role) error {
	if id.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwnership fails with domain.ErrNotAcceptable unless id is the owner.
func RequireOwnership(id domain.Identity, ownerID int64) error {
	if id.ID != ownerID {
		return domain.ErrNotAcceptable
	}
	return nil
}
