package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// DefaultTokenTTL applies when Encode is called without a positive TTL.
const DefaultTokenTTL = 15 * time.Minute

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "HS256"

var signingMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// wireClaims is the JSON payload of an access token. Pointer fields let Decode
// tell an absent claim from a zero value.
type wireClaims struct {
	PrincipalID *int64 `json:"id"`
	Seller      *bool  `json:"seller"`
	jwt.RegisteredClaims
}

// JWTCodec encodes and decodes HMAC-signed JWT access tokens.
type JWTCodec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customises a JWTCodec.
type CodecOption func(*JWTCodec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *JWTCodec) { c.now = now }
}

// NewJWTCodec builds a codec signing with secret under the named HMAC algorithm.
func NewJWTCodec(secret, algorithm string, opts ...CodecOption) (*JWTCodec, error) {
	if secret == "" {
		return nil, errors.New("token codec: empty secret key")
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	method, ok := signingMethods[strings.ToUpper(algorithm)]
	if !ok {
		return nil, fmt.Errorf("token codec: unsupported signing algorithm %q", algorithm)
	}

	c := &JWTCodec{secret: []byte(secret), method: method, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	return c, nil
}

// Algorithm returns the JWS algorithm name tokens are signed with.
func (c *JWTCodec) Algorithm() string { return c.method.Alg() }

// Encode signs claims into a token expiring ttl from now.
func (c *JWTCodec) Encode(claims domain.Claims, ttl time.Duration) (domain.AccessToken, error) {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	now := c.now()

	id := claims.PrincipalID
	seller := claims.Role.IsSeller()
	wc := wireClaims{
		PrincipalID: &id,
		Seller:      &seller,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(c.method, wc).SignedString(c.secret)
	if err != nil {
		return domain.AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.AccessToken{
		Token:     signed,
		TokenType: domain.TokenTypeBearer,
		ExpiresAt: wc.ExpiresAt.Time,
	}, nil
}

// Decode verifies token and returns its claims. Expired tokens yield
// domain.ErrTokenExpired; every other failure yields domain.ErrInvalidToken.
func (c *JWTCodec) Decode(token string) (domain.Claims, error) {
	var wc wireClaims
	_, err := c.parser.ParseWithClaims(token, &wc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, domain.ErrTokenExpired
		}
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	if wc.Subject == "" || wc.PrincipalID == nil || wc.Seller == nil || *wc.PrincipalID < 0 {
		return domain.Claims{}, fmt.Errorf("%w: missing required claims", domain.ErrInvalidToken)
	}

	return domain.Claims{
		Subject:     wc.Subject,
		PrincipalID: *wc.PrincipalID,
		Role:        domain.RoleFromSellerFlag(*wc.Seller),
		ExpiresAt:   wc.ExpiresAt.Time,
	}, nil
}
