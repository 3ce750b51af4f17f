// Package mail fills html/template messages and dispatches them over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	gomail "github.com/wneessen/go-mail"
)

// Config holds SMTP settings read from the environment
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// DryRun renders messages without dialling SMTP; used in development
	// and tests
	DryRun bool
}

// Mailer renders mail templates and sends them via SMTP
type Mailer struct {
	cfg Config
}

// NewMailer creates a new mailer
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// ContactData fills the contact notification template
type ContactData struct {
	Name    string
	Email   string
	Message string
}

// PasswordResetData fills the password reset template
type PasswordResetData struct {
	Name     string
	ResetURL string
}

// SendContact mails a contact-form submission to the operators address
func (m *Mailer) SendContact(to string, data ContactData) error {
	body, err := m.Render("contact.html", data)
	if err != nil {
		return err
	}
	return m.send(to, "Contact form: "+data.Name, body)
}

// SendPasswordReset mails a single-use password reset link
func (m *Mailer) SendPasswordReset(to string, data PasswordResetData) error {
	body, err := m.Render("password_reset.html", data)
	if err != nil {
		return err
	}
	return m.send(to, "Password reset", body)
}

// Render fills the named template from templates/mail
func (m *Mailer) Render(name string, data interface{}) (string, error) {
	dir, err := findTemplatesDir()
	if err != nil {
		return "", err
	}

	tmpl, err := template.ParseFiles(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to parse mail template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", name, err)
	}

	return buf.String(), nil
}

// send builds the message and dispatches it via SMTP
func (m *Mailer) send(to, subject, body string) error {
	if m.cfg.DryRun {
		log.Printf("Mail (dry run) to %s: %s", to, subject)
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

// findTemplatesDir locates templates/mail from the working directory or any
// parent, so tests run from package directories find it too.
func findTemplatesDir() (string, error) {
	if _, err := os.Stat("templates/mail"); err == nil {
		return "templates/mail", nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		path := filepath.Join(currentDir, "templates", "mail")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return "templates/mail", nil
}
