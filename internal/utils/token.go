package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewConfirmationToken returns an opaque random token used for email
// confirmation and password reset links.  32 bytes of entropy encoded as
// 64 hex characters.
func NewConfirmationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
