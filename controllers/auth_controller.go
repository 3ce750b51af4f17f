package controllers

import (
	"log"
	"net/http"
	"strings"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/mail"
	"github.com/dandoon/sample-webapp/middleware"
	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
)

// AuthController handles admin sign-in, sign-out and password reset
type AuthController struct {
	services *services.Services
	mailer   *mail.Mailer
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, mailer *mail.Mailer) *AuthController {
	return &AuthController{
		services: services,
		mailer:   mailer,
	}
}

// loginPageData is the template data for the login page
type loginPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	Form        *models.LoginForm
}

// LoginForm handles GET /login
func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	flashError, flashSuccess := popFlash(r)

	renderTemplate(w, "admin", "login.html", loginPageData{
		Title:       "Sign In",
		CurrentPage: "login",
		Error:       flashError,
		Success:     flashSuccess,
		Form:        &models.LoginForm{},
	})
}

// Login handles POST /login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	renderFailure := func(message string) {
		renderTemplateWithStatus(w, http.StatusUnauthorized, "admin", "login.html", loginPageData{
			Title:       "Sign In",
			CurrentPage: "login",
			Error:       message,
			Form:        &models.LoginForm{Email: form.Email},
		})
	}

	if errors := form.Validate(); len(errors) > 0 {
		renderFailure(strings.Join(errors, ", "))
		return
	}

	user, err := c.services.Auth.VerifyCredentials(r.Context(), form.Email, form.Password)
	if err != nil {
		renderFailure("Invalid email or password")
		return
	}

	// The session holds the api token alongside the user identity so the
	// ajax relay can authenticate against the api host
	token, err := c.services.Token.Issue(user.ID, user.Role)
	if err != nil {
		http.Error(w, "Failed to issue token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sess := session.GetSession(r)
	sess.Set(middleware.SessionUserID, user.ID)
	sess.Set(middleware.SessionUserName, user.Name())
	sess.Set(middleware.SessionUserMail, user.Email)
	sess.Set(middleware.SessionUserRole, user.Role)
	sess.Set(middleware.SessionToken, token)

	returnTo, _ := sess.Get(middleware.SessionReturnTo).(string)
	sess.Delete(middleware.SessionReturnTo)
	if returnTo == "" {
		returnTo = "/"
	}

	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// Logout handles GET /logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	for _, key := range []string{
		middleware.SessionUserID,
		middleware.SessionUserName,
		middleware.SessionUserMail,
		middleware.SessionUserRole,
		middleware.SessionToken,
		middleware.SessionReturnTo,
	} {
		sess.Delete(key)
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ResetRequestForm handles GET /password/reset-request
func (c *AuthController) ResetRequestForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "admin", "password_reset_request.html", struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Sent        bool
	}{
		Title:       "Password Reset",
		CurrentPage: "login",
	})
}

// ResetRequest handles POST /password/reset-request. The confirmation page
// renders the same whether or not the email matched a user.
func (c *AuthController) ResetRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	user, token, err := c.services.Auth.RequestPasswordReset(r.Context(), email)
	if err == nil {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		resetURL := scheme + "://" + r.Host + "/password/reset/" + token

		mailErr := c.mailer.SendPasswordReset(user.Email, mail.PasswordResetData{
			Name:     user.Name(),
			ResetURL: resetURL,
		})
		if mailErr != nil {
			log.Printf("Failed to send password reset mail: %v", mailErr)
		}
	}

	renderTemplate(w, "admin", "password_reset_request.html", struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Sent        bool
	}{
		Title:       "Password Reset",
		CurrentPage: "login",
		Sent:        true,
	})
}

// ResetForm handles GET /password/reset/{token}
func (c *AuthController) ResetForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "admin", "password_reset.html", struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Token       string
	}{
		Title:       "Choose New Password",
		CurrentPage: "login",
		Token:       chi.URLParam(r, "token"),
	})
}

// Reset handles POST /password/reset/{token}
func (c *AuthController) Reset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	token := chi.URLParam(r, "token")
	form := &models.PasswordResetForm{
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirm"),
	}

	renderFailure := func(message string) {
		renderTemplateWithStatus(w, http.StatusBadRequest, "admin", "password_reset.html", struct {
			Title       string
			CurrentPage string
			Error       string
			Success     string
			Token       string
		}{
			Title:       "Choose New Password",
			CurrentPage: "login",
			Error:       message,
			Token:       token,
		})
	}

	if errors := form.Validate(); len(errors) > 0 {
		renderFailure(strings.Join(errors, ", "))
		return
	}

	if err := c.services.Auth.ResetPassword(r.Context(), token, form.Password); err != nil {
		renderFailure("This reset link is invalid or has expired")
		return
	}

	setFlash(r, "success", "Password updated, please sign in")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
