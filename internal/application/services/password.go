package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/reactiverse/core/internal/infrastructure/config"
	"github.com/reactiverse/core/internal/ports"
)

// PlainHasher stores passwords as supplied, keeping users.json compatible
// with files written by the storefront.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlainHasher) Compare(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (PlainHasher) Scheme() string {
	return config.PasswordSchemePlain
}

// BcryptHasher stores bcrypt digests.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func (h BcryptHasher) Scheme() string {
	return config.PasswordSchemeBcrypt
}

// NewPasswordHasher returns the hasher for a configured scheme
func NewPasswordHasher(scheme string) (ports.PasswordHasher, error) {
	switch scheme {
	case "", config.PasswordSchemePlain:
		return PlainHasher{}, nil
	case config.PasswordSchemeBcrypt:
		return BcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
