package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/ratepoint/service-core/internal/apperr"
)

// Hasher defines the minimal hashing interface (abstract so we can swap to
// argon2 later).
type Hasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = 12
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

const passwordSpecials = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// ValidatePassword enforces the complexity rule shared by signup and
// password change: 8-16 characters with at least one uppercase letter and
// one special character.
func ValidatePassword(pw string) error {
	if len(pw) < 8 || len(pw) > 16 {
		return apperr.Validation("password must be 8-16 characters")
	}
	var hasUpper, hasSpecial bool
	for _, r := range pw {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}
	if !hasUpper {
		return apperr.Validation("password must contain an uppercase letter")
	}
	if !hasSpecial {
		return apperr.Validation("password must contain a special character")
	}
	return nil
}
