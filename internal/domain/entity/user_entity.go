package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt digest and is empty for name-only users.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

// HasCredentials reports whether the user can sign in with a password.
func (u *User) HasCredentials() bool {
	return u.PasswordHash != ""
}

// Redacted returns a copy without the password digest.
func (u *User) Redacted() *User {
	c := *u
	c.PasswordHash = ""
	return &c
}
