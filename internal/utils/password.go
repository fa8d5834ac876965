package utils

import (
	"net/mail"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the floor enforced by the password policy.
const MinPasswordLength = 8

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordMeetsPolicy reports whether a candidate password has at least
// MinPasswordLength characters and contains one uppercase letter, one
// lowercase letter, one digit and one symbol.
func PasswordMeetsPolicy(plain string) bool {
	if len(plain) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// ValidEmail reports whether the address parses as a bare RFC 5322 address.
func ValidEmail(addr string) bool {
	if addr == "" {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
