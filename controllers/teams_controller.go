package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
)

// TeamsController handles team management requests in the admin app
type TeamsController struct {
	services *services.Services
}

// NewTeamsController creates a new teams controller
func NewTeamsController(services *services.Services) *TeamsController {
	return &TeamsController{
		services: services,
	}
}

// Index handles GET /teams
func (c *TeamsController) Index(w http.ResponseWriter, r *http.Request) {
	teams, err := c.services.Team.GetAllTeams(r.Context())
	if err != nil {
		http.Error(w, "Failed to load teams: "+err.Error(), http.StatusInternalServerError)
		return
	}

	flashError, flashSuccess := popFlash(r)

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Teams       []models.Team
		Form        *models.TeamForm
	}{
		Title:       "Teams",
		CurrentPage: "teams",
		Error:       flashError,
		Success:     flashSuccess,
		Teams:       teams,
		Form:        &models.TeamForm{},
	}

	renderTemplate(w, "admin", "teams.html", templateData)
}

// Create handles POST /teams
func (c *TeamsController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.TeamForm{Name: r.FormValue("name")}

	_, err := c.services.Team.CreateTeam(r.Context(), form)
	if err != nil {
		teams, loadErr := c.services.Team.GetAllTeams(r.Context())
		if loadErr != nil {
			http.Error(w, "Failed to load teams: "+loadErr.Error(), http.StatusInternalServerError)
			return
		}

		templateData := struct {
			Title       string
			CurrentPage string
			Error       string
			Success     string
			Teams       []models.Team
			Form        *models.TeamForm
		}{
			Title:       "Teams",
			CurrentPage: "teams",
			Error:       err.Error(),
			Teams:       teams,
			Form:        form,
		}

		renderTemplateWithStatus(w, http.StatusBadRequest, "admin", "teams.html", templateData)
		return
	}

	setFlash(r, "success", "Team added")
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// Edit handles GET /teams/{id}/edit
func (c *TeamsController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	team, err := c.services.Team.GetTeamByID(r.Context(), id)
	if err != nil {
		RenderErrorPage("admin")(w, r, http.StatusNotFound, "Team not found")
		return
	}

	c.renderEdit(w, r, http.StatusOK, team, &models.TeamForm{Name: team.Name}, "")
}

// Update handles POST /teams/{id}
func (c *TeamsController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.TeamForm{Name: r.FormValue("name")}

	_, err = c.services.Team.UpdateTeam(r.Context(), id, form)
	if err != nil {
		team, loadErr := c.services.Team.GetTeamByID(r.Context(), id)
		if loadErr != nil {
			RenderErrorPage("admin")(w, r, http.StatusNotFound, "Team not found")
			return
		}

		c.renderEdit(w, r, http.StatusBadRequest, team, form, err.Error())
		return
	}

	setFlash(r, "success", "Team updated")
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// Delete handles POST /teams/{id}/delete
func (c *TeamsController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	if _, err := c.services.Team.DeleteTeam(r.Context(), id); err != nil {
		setFlash(r, "error", "Failed to delete team: "+err.Error())
	} else {
		setFlash(r, "success", "Team deleted")
	}

	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}

// AddMember handles POST /teams/{id}/members, adding a member to the team
func (c *TeamsController) AddMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	memberID, _ := strconv.Atoi(r.FormValue("member_id"))
	form := &models.TeamMembershipForm{MemberID: memberID, TeamID: id}

	if _, err := c.services.Membership.AddMemberToTeam(r.Context(), form); err != nil {
		setFlash(r, "error", "Failed to add member: "+err.Error())
	} else {
		setFlash(r, "success", "Member added to team")
	}

	http.Redirect(w, r, "/teams/"+chi.URLParam(r, "id")+"/edit", http.StatusSeeOther)
}

// RemoveMember handles POST /teams/{id}/members/{membershipId}/delete
func (c *TeamsController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	membershipID, err := strconv.Atoi(chi.URLParam(r, "membershipId"))
	if err != nil {
		http.Error(w, "Invalid membership ID", http.StatusBadRequest)
		return
	}

	if _, err := c.services.Membership.RemoveMembership(r.Context(), membershipID); err != nil {
		setFlash(r, "error", "Failed to remove member: "+err.Error())
	} else {
		setFlash(r, "success", "Member removed from team")
	}

	http.Redirect(w, r, "/teams/"+chi.URLParam(r, "id")+"/edit", http.StatusSeeOther)
}

// renderEdit renders the team edit page with memberships and member choices
func (c *TeamsController) renderEdit(w http.ResponseWriter, r *http.Request, status int, team *models.Team, form *models.TeamForm, errorMessage string) {
	memberships, err := c.services.Team.GetTeamMembers(r.Context(), team.ID)
	if err != nil {
		http.Error(w, "Failed to load memberships: "+err.Error(), http.StatusInternalServerError)
		return
	}

	members, err := c.services.Member.GetAllMembers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load members: "+err.Error(), http.StatusInternalServerError)
		return
	}

	flashError, flashSuccess := popFlash(r)
	if errorMessage != "" {
		flashError = errorMessage
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Team        *models.Team
		Form        *models.TeamForm
		Memberships []models.TeamMembership
		Members     []models.Member
	}{
		Title:       "Edit Team",
		CurrentPage: "teams",
		Error:       flashError,
		Success:     flashSuccess,
		Team:        team,
		Form:        form,
		Memberships: memberships,
		Members:     members,
	}

	renderTemplateWithStatus(w, status, "admin", "team_edit.html", templateData)
}
