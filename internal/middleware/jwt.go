package middleware // reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
	"cineman/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject into the request context.  The provided
// secret must be the access-token secret; refresh tokens are signed with a
// different one and additionally carry allow_login=false, so they are
// rejected here on both counts.  Handlers read the authenticated subject
// via c.Get("user_id").
func JWTAuth(accessSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, domain.ErrCredentialsInvalid)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseToken(accessSecret, raw)
			if err != nil {
				return unauthorized(c, domain.ErrCredentialsInvalid)
			}
			if !claims.AllowLogin {
				return unauthorized(c, domain.ErrAccessTokenRequired)
			}

			c.Set("user_id", claims.UserID)
			return next(c)
		}
	}
}

// unauthorized writes a problem response in the same shape the handler
// layer uses, without importing it.
func unauthorized(c echo.Context, derr *domain.Error) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"type":           derr.Code,
		"status":         derr.Status,
		"title":          derr.Code,
		"detail":         derr.Detail,
		"instance":       c.Request().URL.Path,
		"correlation_id": c.Response().Header().Get("X-Correlation-ID"),
	})
}
