package controllers

import (
	"net/http"
	"strings"

	"github.com/dandoon/sample-webapp/mail"
	"github.com/dandoon/sample-webapp/models"
)

// WWWController handles the public www site
type WWWController struct {
	mailer    *mail.Mailer
	operators string // address contact-form mail goes to
}

// NewWWWController creates a new www controller
func NewWWWController(mailer *mail.Mailer, operators string) *WWWController {
	return &WWWController{
		mailer:    mailer,
		operators: operators,
	}
}

// wwwPageData is the template data for public pages
type wwwPageData struct {
	Title       string
	CurrentPage string
	Error       string
	Success     string
	Form        *models.ContactForm
}

// Index handles GET /
func (c *WWWController) Index(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "www", "index.html", wwwPageData{
		Title:       "Home",
		CurrentPage: "home",
	})
}

// About handles GET /about
func (c *WWWController) About(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "www", "about.html", wwwPageData{
		Title:       "About",
		CurrentPage: "about",
	})
}

// ContactForm handles GET /contact
func (c *WWWController) ContactForm(w http.ResponseWriter, r *http.Request) {
	flashError, flashSuccess := popFlash(r)

	renderTemplate(w, "www", "contact.html", wwwPageData{
		Title:       "Contact",
		CurrentPage: "contact",
		Error:       flashError,
		Success:     flashSuccess,
		Form:        &models.ContactForm{},
	})
}

// Contact handles POST /contact
func (c *WWWController) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.ContactForm{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if errors := form.Validate(); len(errors) > 0 {
		renderTemplateWithStatus(w, http.StatusBadRequest, "www", "contact.html", wwwPageData{
			Title:       "Contact",
			CurrentPage: "contact",
			Error:       strings.Join(errors, ", "),
			Form:        form,
		})
		return
	}

	err := c.mailer.SendContact(c.operators, mail.ContactData{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	})
	if err != nil {
		// Mail failure is a flash, not a 500
		setFlash(r, "error", "Sorry, your message could not be sent right now")
	} else {
		setFlash(r, "success", "Thanks, we got your message")
	}

	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}
