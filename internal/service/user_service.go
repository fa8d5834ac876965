package service

import (
	"context"
	"errors"
	"time"

	"cineman/internal/domain"
	"cineman/internal/model"
	"cineman/internal/repository"
)

// minimumAge is the youngest a user may be according to their profile.
const minimumAge = 13

type UserService struct {
	users UserStore
	now   func() time.Time
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, now: func() time.Time { return time.Now().UTC() }}
}

// GetProfile returns the authenticated user's record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}

// UpdateProfile writes the mutable profile fields.  A date of birth may be
// omitted; when present it cannot lie in the future and must make the user
// at least minimumAge years old.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, firstName, lastName *string, dateOfBirth *time.Time) (*model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if dateOfBirth != nil {
		now := s.now()
		if dateOfBirth.After(now) {
			return nil, domain.ErrDateOfBirthInvalid
		}
		if dateOfBirth.After(now.AddDate(-minimumAge, 0, 0)) {
			return nil, domain.ErrAgeTooSmall
		}
	}

	u.FirstName = firstName
	u.LastName = lastName
	u.DateOfBirth = dateOfBirth
	if err := s.users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes the authenticated user's account.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	err := s.users.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}
