package models

import (
	"time"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a login user for the admin app and the api
type User struct {
	ID        int    `json:"id" db:"id"`
	Firstname string `json:"firstname" db:"firstname"`
	Lastname  string `json:"lastname" db:"lastname"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password"` // bcrypt hash, never serialised
	Role      string `json:"role" db:"role"`

	ResetToken   string     `json:"-" db:"reset_token"`
	ResetExpires *time.Time `json:"-" db:"reset_expires"`
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.Firstname + " " + u.Lastname
}

// LoginForm represents the admin sign-in form
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if f.Email == "" {
		errors = append(errors, "Email is required")
	}

	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}

// PasswordResetForm represents the choose-new-password form
type PasswordResetForm struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// Validate validates the password reset form data
func (f *PasswordResetForm) Validate() []string {
	var errors []string

	if len(f.Password) < 8 {
		errors = append(errors, "Password must be at least 8 characters")
	}

	if f.Password != f.Confirm {
		errors = append(errors, "Passwords do not match")
	}

	return errors
}
