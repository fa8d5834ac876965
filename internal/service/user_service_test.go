package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cineman/internal/domain"
	"cineman/internal/model"
)

func newTestUserService(users *memUsers) *UserService {
	svc := NewUserService(users)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return svc
}

func strPtr(s string) *string { return &s }

func TestUpdateProfileDateOfBirthRules(t *testing.T) {
	users := newMemUsers()
	users.users["u1"] = &model.User{ID: "u1", Email: "u1@b.io"}
	svc := newTestUserService(users)
	ctx := context.Background()

	future := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.UpdateProfile(ctx, "u1", nil, nil, &future)
	assert.ErrorIs(t, err, domain.ErrDateOfBirthInvalid)

	// Twelve years old is too young.
	young := time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.UpdateProfile(ctx, "u1", nil, nil, &young)
	assert.ErrorIs(t, err, domain.ErrAgeTooSmall)

	ok := time.Date(2013, 8, 1, 0, 0, 0, 0, time.UTC)
	u, err := svc.UpdateProfile(ctx, "u1", strPtr("Ada"), strPtr("Lovelace"), &ok)
	require.NoError(t, err)
	assert.Equal(t, "Ada", *u.FirstName)
	require.NotNil(t, u.DateOfBirth)
	assert.Equal(t, ok, *u.DateOfBirth)
}

func TestProfileNotFound(t *testing.T) {
	users := newMemUsers()
	svc := newTestUserService(users)
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = svc.UpdateProfile(ctx, "missing", nil, nil, nil)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "missing"), domain.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	users := newMemUsers()
	users.users["u1"] = &model.User{ID: "u1", Email: "u1@b.io"}
	svc := newTestUserService(users)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))
	_, err := svc.GetProfile(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
