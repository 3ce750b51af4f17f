package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/dandoon/sample-webapp/api"
	"github.com/dandoon/sample-webapp/config"
	"github.com/dandoon/sample-webapp/controllers"
	"github.com/dandoon/sample-webapp/database"
	"github.com/dandoon/sample-webapp/mail"
	appmiddleware "github.com/dandoon/sample-webapp/middleware"
	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
	"github.com/dandoon/sample-webapp/services"
)

func main() {
	// Load environment variables from .env file; absent in production
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.InitializeDatabase(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	repos := repositories.NewRepositories(db, cfg.LogCap)
	srvs := services.NewServices(repos, cfg.TokenSecret, cfg.TokenTTL)

	// Development convenience: a guest sign-in so a fresh database is usable
	if cfg.Env == "development" {
		err := srvs.Auth.EnsureUser(context.Background(), "Guest", "User", "guest@user.com", "guest", models.RoleAdmin)
		if err != nil {
			log.Fatalf("Failed to seed guest user: %v", err)
		}
	}

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		DryRun:   cfg.Env == "development" && cfg.SMTPUsername == "",
	})

	ctrl := controllers.NewControllers(srvs, mailer, cfg)

	root, err := setupRouters(ctrl, srvs, cfg)
	if err != nil {
		log.Fatalf("Failed to setup routers: %v", err)
	}

	log.Printf("Listening on port %s (www/admin/api by host)", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, root))
}

// setupRouters builds the three per-app routers and the host dispatcher
func setupRouters(ctrl *controllers.Controllers, srvs *services.Services, cfg *config.Config) (http.Handler, error) {
	wwwRouter, err := setupWWWRouter(ctrl, srvs, cfg)
	if err != nil {
		return nil, err
	}

	adminRouter, err := setupAdminRouter(ctrl, srvs, cfg)
	if err != nil {
		return nil, err
	}

	apiRouter := setupAPIRouter(srvs)

	return hostDispatch(wwwRouter, adminRouter, apiRouter), nil
}

// hostDispatch routes by the first label of the Host header: "admin." and
// "api." select their apps, anything else is the public site
func hostDispatch(www, admin, apiApp http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.Host
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}
		label, _, _ := strings.Cut(host, ".")

		switch label {
		case "admin":
			admin.ServeHTTP(w, r)
		case "api":
			apiApp.ServeHTTP(w, r)
		default:
			www.ServeHTTP(w, r)
		}
	})
}

// setupWWWRouter configures the public site
func setupWWWRouter(ctrl *controllers.Controllers, srvs *services.Services, cfg *config.Config) (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(appmiddleware.AccessLogger(srvs.Log, models.AppWWW))
	r.Use(appmiddleware.Recovery(srvs.Log, models.AppWWW, controllers.RenderErrorPage("www")))
	r.Use(appmiddleware.SecureHeaders)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	sessionHandler, err := sessioner("www_session", cfg.UseHTTPS)
	if err != nil {
		return nil, err
	}
	r.Use(sessionHandler)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	r.Get("/", ctrl.WWW.Index)
	r.Get("/about", ctrl.WWW.About)
	r.Get("/contact", ctrl.WWW.ContactForm)
	r.Post("/contact", ctrl.WWW.Contact)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		controllers.RenderErrorPage("www")(w, r, http.StatusNotFound, "Page not found")
	})

	return r, nil
}

// setupAdminRouter configures the admin backend
func setupAdminRouter(ctrl *controllers.Controllers, srvs *services.Services, cfg *config.Config) (chi.Router, error) {
	r := chi.NewRouter()

	r.Use(appmiddleware.AccessLogger(srvs.Log, models.AppAdmin))
	r.Use(appmiddleware.Recovery(srvs.Log, models.AppAdmin, controllers.RenderErrorPage("admin")))
	r.Use(appmiddleware.SecureHeaders)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	sessionHandler, err := sessioner("admin_session", cfg.UseHTTPS)
	if err != nil {
		return nil, err
	}
	r.Use(sessionHandler)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	// PUBLIC ROUTES (no authentication required)
	r.Get("/login", ctrl.Auth.LoginForm)
	r.Post("/login", ctrl.Auth.Login)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/password/reset-request", ctrl.Auth.ResetRequestForm)
	r.Post("/password/reset-request", ctrl.Auth.ResetRequest)
	r.Get("/password/reset/{token}", ctrl.Auth.ResetForm)
	r.Post("/password/reset/{token}", ctrl.Auth.Reset)

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(appmiddleware.RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/members", http.StatusSeeOther)
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", ctrl.Members.Index)
			r.Post("/", ctrl.Members.Create)
			r.Get("/{id}/edit", ctrl.Members.Edit)
			r.Post("/{id}", ctrl.Members.Update)
			r.Post("/{id}/delete", ctrl.Members.Delete)
			r.Post("/{id}/teams", ctrl.Members.AddTeam)
			r.Post("/{id}/teams/{membershipId}/delete", ctrl.Members.RemoveTeam)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", ctrl.Teams.Index)
			r.Post("/", ctrl.Teams.Create)
			r.Get("/{id}/edit", ctrl.Teams.Edit)
			r.Post("/{id}", ctrl.Teams.Update)
			r.Post("/{id}/delete", ctrl.Teams.Delete)
			r.Post("/{id}/members", ctrl.Teams.AddMember)
			r.Post("/{id}/members/{membershipId}/delete", ctrl.Teams.RemoveMember)
		})

		r.Route("/dev", func(r chi.Router) {
			r.Get("/log-access", ctrl.Logs.AccessLog)
			r.Get("/log-error", ctrl.Logs.ErrorLog)
		})

		r.HandleFunc("/ajax/*", ctrl.Ajax.Relay)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		controllers.RenderErrorPage("admin")(w, r, http.StatusNotFound, "Page not found")
	})

	return r, nil
}

// setupAPIRouter configures the api app
func setupAPIRouter(srvs *services.Services) chi.Router {
	r := chi.NewRouter()

	r.Use(appmiddleware.AccessLogger(srvs.Log, models.AppAPI))
	r.Use(appmiddleware.Recovery(srvs.Log, models.AppAPI, jsonError))
	r.Use(appmiddleware.SecureHeaders)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Mount("/", api.Router(srvs))

	return r
}

// jsonError is the api-side error renderer for the recovery middleware
func jsonError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// sessioner builds the session middleware shared by the www and admin apps
func sessioner(cookieName string, secure bool) (func(http.Handler) http.Handler, error) {
	return session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     cookieName,
		Secure:         secure,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
}
