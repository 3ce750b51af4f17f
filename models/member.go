package models

import (
	"time"
)

// Member represents a row in the members table
type Member struct {
	ID        int       `json:"id" db:"id"`
	Firstname string    `json:"firstname" db:"firstname"`
	Lastname  string    `json:"lastname" db:"lastname"`
	Email     string    `json:"email" db:"email"`
	JoinedOn  time.Time `json:"joined_on" db:"joined_on"`
}

// Name returns the member's display name
func (m *Member) Name() string {
	return m.Firstname + " " + m.Lastname
}

// MemberForm represents form data for creating/updating members
type MemberForm struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// Validate validates the member form data
func (f *MemberForm) Validate() []string {
	var errors []string

	if f.Firstname == "" {
		errors = append(errors, "Firstname is required")
	}

	if f.Lastname == "" {
		errors = append(errors, "Lastname is required")
	}

	if len(f.Firstname) > 100 {
		errors = append(errors, "Firstname must be less than 100 characters")
	}

	if len(f.Lastname) > 100 {
		errors = append(errors, "Lastname must be less than 100 characters")
	}

	if f.Email == "" {
		errors = append(errors, "Email is required")
	} else if len(f.Email) > 255 {
		errors = append(errors, "Email must be less than 255 characters")
	} else if !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	return errors
}
