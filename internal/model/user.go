package model

import "time"

// User represents an application user record as stored in the
// `users` table.  The json tags are omitted because these structs
// are used internally by the repository layer; handlers define
// separate response types with appropriate JSON tags.
//
// Fields:
//  ID                – opaque UUID primary key.
//  Email             – unique email address used for login.
//  PasswordHash      – bcrypt hashed password.
//  FirstName         – optional given name.
//  LastName          – optional family name.
//  DateOfBirth       – optional date of birth (date only, UTC midnight).
//  EmailConfirmed    – whether the primary email has been confirmed.
//  TempEmail         – staged replacement email awaiting confirmation.
//  ConfirmationToken – pending token for email confirmation or password reset.
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
	ID                string     // users.id
	Email             string     // users.email
	PasswordHash      string     // users.password_hash
	FirstName         *string    // users.first_name (nullable)
	LastName          *string    // users.last_name (nullable)
	DateOfBirth       *time.Time // users.date_of_birth (nullable)
	EmailConfirmed    bool       // users.email_confirmed
	TempEmail         *string    // users.temp_email (nullable)
	ConfirmationToken *string    // users.confirmation_token (nullable)
	CreatedAt         time.Time  // users.created_at
	UpdatedAt         time.Time  // users.updated_at
}

// ContactEmail returns the address notifications should go to: the staged
// temp email while an address change is pending, the primary one otherwise.
func (u *User) ContactEmail() string {
	if u.TempEmail != nil && *u.TempEmail != "" {
		return *u.TempEmail
	}
	return u.Email
}
