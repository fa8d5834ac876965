package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
	"cineman/internal/utils"
)

// UserStore is the persistence surface shared by the auth and user
// services.  *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByConfirmationToken(ctx context.Context, token string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateProfile(ctx context.Context, u *model.User) error
	StageEmailChange(ctx context.Context, id, newEmail, token string) error
	SetConfirmationToken(ctx context.Context, id, token string) error
	ConfirmEmail(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

// AuthMailer sends the account lifecycle emails.  Implementations must be
// safe for concurrent use; failures are logged, not surfaced to clients.
type AuthMailer interface {
	SendEmailConfirmation(to, token string) error
	SendPasswordReset(to, token string) error
	SendPasswordChanged(to string) error
}

// AuthConfig carries the token and hashing parameters.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
}

type AuthService struct {
	users  UserStore
	mailer AuthMailer
	cfg    AuthConfig
	logger *zerolog.Logger
}

func NewAuthService(users UserStore, mailer AuthMailer, cfg AuthConfig, logger *zerolog.Logger) *AuthService {
	return &AuthService{users: users, mailer: mailer, cfg: cfg, logger: logger}
}

// dummyHash is verified against when login hits an unknown email, so the
// response time does not reveal whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register creates an unconfirmed account and emails a confirmation token.
func (s *AuthService) Register(ctx context.Context, email, password string, firstName, lastName *string) error {
	if email == "" || password == "" {
		return domain.ErrCredentialsMissing
	}
	if !utils.ValidEmail(email) {
		return domain.ErrEmailFormatInvalid
	}
	if !utils.PasswordMeetsPolicy(password) {
		return domain.ErrPasswordPolicyNotMet
	}

	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.EmailConfirmed:
		return domain.ErrUserAlreadyExists
	case err == nil:
		return domain.ErrUnconfirmedUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return err
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	token, err := utils.NewConfirmationToken()
	if err != nil {
		return err
	}
	u := &model.User{
		ID:                uuid.NewString(),
		Email:             email,
		PasswordHash:      hash,
		FirstName:         firstName,
		LastName:          lastName,
		ConfirmationToken: &token,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}

	if err := s.mailer.SendEmailConfirmation(u.Email, token); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("confirmation email failed")
	}
	return nil
}

// ConfirmEmail redeems a confirmation token.  It completes both initial
// registration and a staged email change; in the latter case the staged
// address becomes the primary one unless someone claimed it meanwhile.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrConfirmationTokenInvalid
	}
	u, err := s.users.GetByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrConfirmationTokenInvalid
		}
		return err
	}
	if err := s.users.ConfirmEmail(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.ErrNewEmailTaken
		}
		return err
	}
	return nil
}

// Login verifies credentials and issues a refresh token.  The password is
// always checked against some hash so unknown emails cost the same time as
// wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrCredentialsMissing
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.VerifyPassword(dummyHash, password)
			return "", domain.ErrCredentialsInvalid
		}
		return "", err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return "", domain.ErrCredentialsInvalid
	}
	return utils.NewRefreshToken(s.cfg.RefreshSecret, u.ID, s.cfg.RefreshTTL)
}

// RefreshAccessToken exchanges a valid refresh token for a short-lived
// access token.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ParseToken(s.cfg.RefreshSecret, refreshToken)
	if err != nil || claims.AllowLogin {
		// An access token presented here is as invalid as a forged one.
		return "", domain.ErrRefreshTokenInvalid
	}
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		return "", domain.ErrRefreshTokenInvalid
	}
	return utils.NewAccessToken(s.cfg.AccessSecret, claims.UserID, s.cfg.AccessTTL)
}

// ChangePassword rotates the password of the authenticated user.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return domain.ErrPasswordEmpty
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if !utils.VerifyPassword(u.PasswordHash, oldPassword) {
		return domain.ErrIncorrectOldPassword
	}
	if !utils.PasswordMeetsPolicy(newPassword) {
		return domain.ErrPasswordPolicyNotMet
	}
	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordChanged(u.Email); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("password changed email failed")
	}
	return nil
}

// ChangeEmail stages a new address for the authenticated user and emails a
// confirmation token to it.  The primary address stays untouched until the
// token comes back through ConfirmEmail.
func (s *AuthService) ChangeEmail(ctx context.Context, userID, newEmail string) error {
	if newEmail == "" {
		return domain.ErrNewEmailBlank
	}
	if !utils.ValidEmail(newEmail) {
		return domain.ErrEmailFormatInvalid
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	token, err := utils.NewConfirmationToken()
	if err != nil {
		return err
	}
	if err := s.users.StageEmailChange(ctx, u.ID, newEmail, token); err != nil {
		return err
	}
	if err := s.mailer.SendEmailConfirmation(newEmail, token); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("email change confirmation failed")
	}
	return nil
}

// ForgotPassword emails a reset token.  Unknown addresses still report
// success so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	if !u.EmailConfirmed {
		return domain.ErrEmailNotConfirmedForReset
	}
	token, err := utils.NewConfirmationToken()
	if err != nil {
		return err
	}
	if err := s.users.SetConfirmationToken(ctx, u.ID, token); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(u.Email, token); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("password reset email failed")
	}
	return nil
}

// ResetPassword redeems a reset token and installs the new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrConfirmationTokenInvalid
	}
	if !utils.PasswordMeetsPolicy(newPassword) {
		return domain.ErrPasswordPolicyNotMet
	}
	u, err := s.users.GetByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrConfirmationTokenInvalid
		}
		return err
	}
	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordChanged(u.Email); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID).Msg("password changed email failed")
	}
	return nil
}
