package auth

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with configured cost. Hashing is
// an explicit call on the password-set code path, never a persistence hook.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// ValidatePasswordStrength enforces the password policy applied everywhere a
// password is set: minimum length plus lowercase, uppercase, digit and
// special-character classes.
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	switch {
	case !lower:
		return errors.New("password must contain a lowercase letter")
	case !upper:
		return errors.New("password must contain an uppercase letter")
	case !digit:
		return errors.New("password must contain a number")
	case !special:
		return errors.New("password must contain a special character")
	}
	return nil
}
