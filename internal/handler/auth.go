package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
	"cineman/internal/service"
)

// AuthHandler exposes the account lifecycle endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// reqCtx bounds a request-scoped operation; nothing in this API should
// hold a database connection longer than this.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Register creates an unconfirmed account and sends the confirmation mail.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrCredentialsMissing)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, echo.Map{"message": "confirmation email sent"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a refresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrCredentialsMissing)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"refresh_token": token})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a refresh token for an access token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrRefreshTokenInvalid)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	token, err := h.auth.RefreshAccessToken(ctx, req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"access_token": token})
}

type confirmEmailRequest struct {
	Token string `json:"token"`
}

// ConfirmEmail redeems a confirmation token.
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	var req confirmEmailRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrConfirmationTokenInvalid)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.ConfirmEmail(ctx, req.Token); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "email confirmed"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword sends a reset token.  Unknown addresses still get a 200.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrEmailFormatInvalid)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.ForgotPassword(ctx, req.Email); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "reset email sent if the account exists"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword redeems a reset token and installs the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrConfirmationTokenInvalid)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "password reset"})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword rotates the authenticated user's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrPasswordEmpty)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.ChangePassword(ctx, userID(c), req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "password changed"})
}

type changeEmailRequest struct {
	NewEmail string `json:"new_email"`
}

// ChangeEmail stages a new address for the authenticated user.
func (h *AuthHandler) ChangeEmail(c echo.Context) error {
	var req changeEmailRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrNewEmailBlank)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.auth.ChangeEmail(ctx, userID(c), req.NewEmail); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "confirmation email sent to new address"})
}
