package controllers

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"gitea.com/go-chi/session"

	"github.com/dandoon/sample-webapp/config"
	"github.com/dandoon/sample-webapp/mail"
	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth    *AuthController
	Members *MembersController
	Teams   *TeamsController
	Logs    *LogsController
	Ajax    *AjaxController
	WWW     *WWWController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, mailer *mail.Mailer, cfg *config.Config) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(services, mailer),
		Members: NewMembersController(services),
		Teams:   NewTeamsController(services),
		Logs:    NewLogsController(services),
		Ajax:    NewAjaxController(services, cfg.APIHost),
		WWW:     NewWWWController(mailer, cfg.MailTo),
	}
}

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, app string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, app, pageTemplate, data)
}

// renderTemplateWithStatus parses the app layout plus the page template and
// renders them with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, app string, pageTemplate string, data interface{}) error {
	dir, err := findTemplatesDir()
	if err != nil {
		http.Error(w, "Failed to locate templates: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	tmpl := template.New(pageTemplate)
	tmpl.Funcs(template.FuncMap{
		"fmtDate": func(t interface{ Format(string) string }) string { return t.Format("2006-01-02") },
		"fmtTime": func(t interface{ Format(string) string }) string { return t.Format("2006-01-02 15:04:05") },
		"fmtMs":   func(ms float64) string { return fmt.Sprintf("%.1f ms", ms) },
	})

	_, err = tmpl.ParseFiles(
		filepath.Join(dir, app, "layout.html"),
		filepath.Join(dir, app, pageTemplate),
	)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// RenderErrorPage renders the app's templated error page; wired into the
// recovery middleware and not-found handlers
func RenderErrorPage(app string) func(w http.ResponseWriter, r *http.Request, status int, message string) {
	return func(w http.ResponseWriter, r *http.Request, status int, message string) {
		templateData := struct {
			Title       string
			CurrentPage string
			Error       string
			Success     string
			Status      int
			Message     string
		}{
			Title:   fmt.Sprintf("%d", status),
			Status:  status,
			Message: message,
		}
		renderTemplateWithStatus(w, status, app, "error.html", templateData)
	}
}

// setFlash stores a one-shot flash message in the session
func setFlash(r *http.Request, flashType, message string) {
	sess := session.GetSession(r)
	if sess == nil {
		return
	}
	sess.Set("flash", models.FlashMessage{Type: flashType, Message: message})
}

// popFlash reads and clears the session flash message
func popFlash(r *http.Request) (flashError, flashSuccess string) {
	sess := session.GetSession(r)
	if sess == nil {
		return "", ""
	}

	flash, ok := sess.Get("flash").(models.FlashMessage)
	if !ok {
		return "", ""
	}
	sess.Delete("flash")

	if flash.Type == "error" {
		return flash.Message, ""
	}
	return "", flash.Message
}

// findTemplatesDir locates the templates directory from the working
// directory or any parent, so tests run from package directories find it too
func findTemplatesDir() (string, error) {
	if _, err := os.Stat("templates"); err == nil {
		return "templates", nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		path := filepath.Join(currentDir, "templates")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return "templates", nil
}
