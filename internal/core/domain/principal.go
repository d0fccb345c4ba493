package domain

import (
	"strings"
	"time"
)

// Role distinguishes the two kinds of principal that can log in.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
)

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleFromSellerFlag converts the wire-level seller flag into a Role.
func RoleFromSellerFlag(seller bool) Role {
	if seller {
		return RoleSeller
	}
	return RoleCustomer
}

// IsSeller reports whether r is the seller role.
func (r Role) IsSeller() bool { return r == RoleSeller }

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSeller
}

// Principal is the read-only view of an account the auth core works with.
type Principal struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
}

// Customer is a buyer account.
type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          *int      `json:"age,omitempty"`
	JoinedOn     time.Time `json:"joined_on"`
	PasswordHash string    `json:"-"`
}

// Principal returns the authentication view of the customer.
func (c *Customer) Principal() Principal {
	return Principal{ID: c.ID, Email: c.Email, PasswordHash: c.PasswordHash, Role: RoleCustomer}
}

// Seller is a merchant account that owns products and bank accounts.
type Seller struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          *int      `json:"age,omitempty"`
	JoinedOn     time.Time `json:"joined_on"`
	PasswordHash string    `json:"-"`
}

// Principal returns the authentication view of the seller.
func (s *Seller) Principal() Principal {
	return Principal{ID: s.ID, Email: s.Email, PasswordHash: s.PasswordHash, Role: RoleSeller}
}
