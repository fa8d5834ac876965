package utils // helper functions for tokens, hashing and input policy

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// TokenPair carries the two JWTs issued at login time.  The access token is
// short-lived and sent in the Authorization header on API calls; the refresh
// token is long-lived, signed with a separate secret, and only accepted by
// the refresh endpoint.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Claims extracted from a validated token.
type Claims struct {
	UserID     string
	AllowLogin bool // true only on access tokens; a refresh token cannot call the API
}

var errTokenInvalid = errors.New("token invalid")

// NewAccessToken builds and signs an HS256 JWT that authorizes API calls.
// The allow_login claim is what distinguishes it from a refresh token when
// both are well-formed JWTs.
func NewAccessToken(secret, userID string, ttl time.Duration) (string, error) {
	return signToken(secret, userID, true, ttl)
}

// NewRefreshToken builds and signs an HS256 JWT, under the refresh secret,
// that may only be exchanged for a fresh access token.
func NewRefreshToken(secret, userID string, ttl time.Duration) (string, error) {
	return signToken(secret, userID, false, ttl)
}

func signToken(secret, userID string, allowLogin bool, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":         userID,
		"allow_login": allowLogin,
		"exp":         now.Add(ttl).Unix(),
		"iat":         now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry under the given secret and
// returns the embedded claims.  Any malformed, expired or foreign-signed
// token comes back as an error; callers translate that into their own
// unauthorized response.
func ParseToken(secret, token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Only HS256 is ever issued; reject anything else outright.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errTokenInvalid
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errTokenInvalid
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return Claims{}, errTokenInvalid
	}
	allow, _ := mc["allow_login"].(bool)
	return Claims{UserID: sub, AllowLogin: allow}, nil
}
