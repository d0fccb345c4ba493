package domain

import "time"

// TokenTypeBearer is the only token type issued by the login endpoint.
const TokenTypeBearer = "bearer"

// Credentials is the transient login input. It is never persisted.
type Credentials struct {
	Identity string
	Secret   string
	Role     Role
}

// Claims is the payload carried by an access token.
type Claims struct {
	Subject     string
	PrincipalID int64
	Role        Role
	ExpiresAt   time.Time
}

// AccessToken is a signed, self-contained token handed to the client at login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

// Identity is the per-request result of a successfully verified token.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsSeller reports whether the identity was issued for a seller login.
func (i Identity) IsSeller() bool { return i.Role.IsSeller() }

// IdentityFromClaims builds the request identity from decoded token claims.
func IdentityFromClaims(c Claims) Identity {
	return Identity{ID: c.PrincipalID, Username: c.Subject, Role: c.Role}
}
