package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidIdentity    = errors.New("invalid identity")
)

// Account is a credential record the login flow checks against.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the authenticated principal bound to a client after login.
type Identity struct {
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	Name     string    `json:"name"`
	IssuedAt time.Time `json:"loginTime"`
}

// Validate checks that every field of the identity is present. Field contents
// are not inspected beyond the role belonging to the canonical set.
func (i *Identity) Validate() error {
	switch {
	case i == nil:
		return ErrInvalidIdentity
	case i.Email == "":
		return errors.Join(ErrInvalidIdentity, errors.New("email is required"))
	case i.Name == "":
		return errors.Join(ErrInvalidIdentity, errors.New("name is required"))
	case !i.Role.Valid():
		return errors.Join(ErrInvalidIdentity, ErrUnknownRole)
	case i.IssuedAt.IsZero():
		return errors.Join(ErrInvalidIdentity, errors.New("loginTime is required"))
	}
	return nil
}

// IdentityFor builds the identity recorded when acct logs in at t.
func IdentityFor(acct *Account, t time.Time) *Identity {
	return &Identity{
		Email:    acct.Email,
		Role:     acct.Role,
		Name:     acct.Name,
		IssuedAt: t.UTC(),
	}
}
