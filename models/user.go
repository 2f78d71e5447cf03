package models

import "time"

// User represents an account entity used for authentication and ownership
// checks. Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the account (UUID string).
	// It is not exposed via JSON and is used at the persistence layer
	// and inside JWT claims.
	UserID string `json:"-"`

	// Email is the unique login identifier of the account.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// PasswordHash stores the bcrypt hash of the account password.
	// Never plaintext, never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
