package models

// ContactForm represents the public contact form
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate validates the contact form data
func (f *ContactForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if f.Email == "" {
		errors = append(errors, "Email is required")
	} else if !isValidEmail(f.Email) {
		errors = append(errors, "Email format is invalid")
	}

	if f.Message == "" {
		errors = append(errors, "Message is required")
	}

	if len(f.Message) > 4000 {
		errors = append(errors, "Message must be less than 4000 characters")
	}

	return errors
}
