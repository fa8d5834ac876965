package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineman/internal/utils"
)

const testSecret = "access-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var subject string
	next := func(c echo.Context) error {
		subject, _ = c.Get("user_id").(string)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return rec, subject
}

func TestJWTAuthAdmitsAccessToken(t *testing.T) {
	token, err := utils.NewAccessToken(testSecret, "user-9", time.Minute)
	require.NoError(t, err)

	rec, subject := runJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-9", subject)
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	// Signed with the access secret but flagged as a refresh token; the
	// allow_login claim alone must keep it out.
	token, err := utils.NewRefreshToken(testSecret, "user-9", time.Minute)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "user.accesstoken.required")
}

func TestJWTAuthRejectsForeignSignature(t *testing.T) {
	token, err := utils.NewAccessToken("other-secret", "user-9", time.Minute)
	require.NoError(t, err)

	rec, _ := runJWT(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
