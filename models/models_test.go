package models

import (
	"strings"
	"testing"
)

// Test MemberForm validation
func TestMemberFormValidation(t *testing.T) {
	// Test valid form
	validForm := MemberForm{
		Firstname: "Jane",
		Lastname:  "Doe",
		Email:     "jane@example.com",
	}
	errors := validForm.Validate()
	if len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	// Test invalid form
	invalidForm := MemberForm{
		Firstname: "",
		Lastname:  "",
		Email:     "not-an-email",
	}
	errors = invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}

	// Test over-long names
	longForm := MemberForm{
		Firstname: strings.Repeat("x", 101),
		Lastname:  "Doe",
		Email:     "jane@example.com",
	}
	errors = longForm.Validate()
	if len(errors) != 1 {
		t.Errorf("Expected 1 error for over-long firstname, got: %v", errors)
	}
}

// Test TeamForm validation
func TestTeamFormValidation(t *testing.T) {
	validForm := TeamForm{Name: "Blue Team"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := TeamForm{Name: ""}
	if errors := invalidForm.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for empty name, got: %v", errors)
	}
}

// Test TeamMembershipForm validation
func TestTeamMembershipFormValidation(t *testing.T) {
	validForm := TeamMembershipForm{MemberID: 1, TeamID: 2}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := TeamMembershipForm{}
	if errors := invalidForm.Validate(); len(errors) != 2 {
		t.Errorf("Expected 2 errors for empty form, got: %v", errors)
	}
}

// Test ContactForm validation
func TestContactFormValidation(t *testing.T) {
	validForm := ContactForm{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello there",
	}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	invalidForm := ContactForm{Email: "bad"}
	errors := invalidForm.Validate()
	if len(errors) != 3 {
		t.Errorf("Expected 3 errors for invalid form, got: %v", errors)
	}
}

// Test PasswordResetForm validation
func TestPasswordResetFormValidation(t *testing.T) {
	validForm := PasswordResetForm{Password: "longenough", Confirm: "longenough"}
	if errors := validForm.Validate(); len(errors) != 0 {
		t.Errorf("Expected no errors for valid form, got: %v", errors)
	}

	shortForm := PasswordResetForm{Password: "short", Confirm: "short"}
	if errors := shortForm.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for short password, got: %v", errors)
	}

	mismatchForm := PasswordResetForm{Password: "longenough", Confirm: "different1"}
	if errors := mismatchForm.Validate(); len(errors) != 1 {
		t.Errorf("Expected 1 error for mismatched passwords, got: %v", errors)
	}
}

// Test email validation edge cases
func TestEmailValidation(t *testing.T) {
	valid := []string{"a@b.c", "jane.doe@example.co.uk", "x+tag@host.org"}
	for _, email := range valid {
		if !isValidEmail(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}

	invalid := []string{"", "plain", "@host.com", "user@", "a@@b.c", "user@host"}
	for _, email := range invalid {
		if isValidEmail(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}
