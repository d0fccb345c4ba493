package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// BcryptHasher hashes secrets with bcrypt. The salt and cost are embedded in
// the resulting hash, so Verify needs nothing but the stored string.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of secret. Secrets longer than 72 bytes
// fail with domain.ErrSecretTooLong.
func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.ErrSecretTooLong
	}
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether secret matches hashed. A malformed hash yields false.
func (h *BcryptHasher) Verify(secret, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}
