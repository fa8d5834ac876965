package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/service"
)

// UserHandler exposes the profile endpoints under /users/me.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	DateOfBirth    *string `json:"date_of_birth"`
	EmailConfirmed bool    `json:"email_confirmed"`
	PendingEmail   *string `json:"pending_email"`
}

func toUserResponse(u *model.User) userResponse {
	resp := userResponse{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		EmailConfirmed: u.EmailConfirmed,
		PendingEmail:   u.TempEmail,
	}
	if u.DateOfBirth != nil {
		d := u.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &d
	}
	return resp
}

// GetProfile returns the authenticated user's record.
func (h *UserHandler) GetProfile(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.users.GetProfile(ctx, userID(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, toUserResponse(u))
}

type updateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"` // YYYY-MM-DD
}

// UpdateProfile writes the mutable profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, domain.ErrBadRequest)
	}
	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		d, err := time.ParseInLocation("2006-01-02", *req.DateOfBirth, time.UTC)
		if err != nil {
			return fail(c, domain.ErrDateOfBirthInvalid)
		}
		dob = &d
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.users.UpdateProfile(ctx, userID(c), req.FirstName, req.LastName, dob)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, toUserResponse(u))
}

// DeleteUser removes the authenticated user's account.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.users.DeleteUser(ctx, userID(c)); err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "account deleted"})
}
