package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cineman/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,date_of_birth,email_confirmed,temp_email,confirmation_token,created_at,updated_at"

// Create inserts a user row.  The ID must already be set by the caller.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id,email,password_hash,first_name,last_name,date_of_birth,email_confirmed,temp_email,confirmation_token,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		u.ID, normalizeEmail(u.Email), u.PasswordHash, u.FirstName, u.LastName, u.DateOfBirth,
		u.EmailConfirmed, u.TempEmail, u.ConfirmationToken, u.CreatedAt, u.UpdatedAt)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", normalizeEmail(email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// GetByConfirmationToken fetches the user holding a pending token.
func (r *UserRepo) GetByConfirmationToken(ctx context.Context, token string) (*model.User, error) {
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE confirmation_token=? LIMIT 1", token)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.DateOfBirth,
		&u.EmailConfirmed, &u.TempEmail, &u.ConfirmationToken, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePassword replaces the stored hash and clears any pending token.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.exec(ctx,
		"UPDATE users SET password_hash=?, confirmation_token=NULL, updated_at=? WHERE id=?",
		hash, time.Now().UTC(), id)
}

// UpdateProfile writes the mutable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *model.User) error {
	return r.exec(ctx,
		"UPDATE users SET first_name=?, last_name=?, date_of_birth=?, updated_at=? WHERE id=?",
		u.FirstName, u.LastName, u.DateOfBirth, time.Now().UTC(), u.ID)
}

// StageEmailChange stores the requested address and the token that must
// come back before the change is applied.
func (r *UserRepo) StageEmailChange(ctx context.Context, id, newEmail, token string) error {
	return r.exec(ctx,
		"UPDATE users SET temp_email=?, confirmation_token=?, updated_at=? WHERE id=?",
		normalizeEmail(newEmail), token, time.Now().UTC(), id)
}

// SetConfirmationToken stores a fresh token for confirmation or reset flows.
func (r *UserRepo) SetConfirmationToken(ctx context.Context, id, token string) error {
	return r.exec(ctx,
		"UPDATE users SET confirmation_token=?, updated_at=? WHERE id=?",
		token, time.Now().UTC(), id)
}

// ConfirmEmail marks the account confirmed, promoting a staged temp email
// to the primary address when one is pending.  A unique-key violation on
// the promoted address comes back as ErrDuplicate.
func (r *UserRepo) ConfirmEmail(ctx context.Context, u *model.User) error {
	email := u.Email
	if u.TempEmail != nil && *u.TempEmail != "" {
		email = *u.TempEmail
	}
	err := r.exec(ctx,
		"UPDATE users SET email=?, temp_email=NULL, confirmation_token=NULL, email_confirmed=1, updated_at=? WHERE id=?",
		email, time.Now().UTC(), u.ID)
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// Delete removes the user row.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "DELETE FROM users WHERE id=?", id)
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
