package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/middleware"
	"github.com/dandoon/sample-webapp/services"
)

// Router builds the api app's routes. /auth is open; everything else
// requires a token issued by it.
func Router(s *services.Services) chi.Router {
	h := NewHandlers(s)

	r := chi.NewRouter()

	r.Get("/auth", h.Auth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireToken(s.Token))

		r.Route("/members", func(r chi.Router) {
			r.Get("/", h.ListMembers)
			r.Post("/", h.CreateMember)
			r.Get("/{id}", h.GetMember)
			r.Patch("/{id}", h.UpdateMember)
			r.Delete("/{id}", h.DeleteMember)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.ListTeams)
			r.Post("/", h.CreateTeam)
			r.Get("/{id}", h.GetTeam)
			r.Patch("/{id}", h.UpdateTeam)
			r.Delete("/{id}", h.DeleteTeam)
		})

		r.Route("/team-members", func(r chi.Router) {
			r.Get("/", h.ListTeamMembers)
			r.Post("/", h.CreateTeamMember)
			r.Get("/{id}", h.GetTeamMember)
			r.Delete("/{id}", h.DeleteTeamMember)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such resource"})
	})

	return r
}
