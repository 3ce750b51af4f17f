package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
)

// MembersController handles member management requests in the admin app
type MembersController struct {
	services *services.Services
}

// NewMembersController creates a new members controller
func NewMembersController(services *services.Services) *MembersController {
	return &MembersController{
		services: services,
	}
}

// Index handles GET /members
func (c *MembersController) Index(w http.ResponseWriter, r *http.Request) {
	members, err := c.services.Member.GetAllMembers(r.Context())
	if err != nil {
		http.Error(w, "Failed to load members: "+err.Error(), http.StatusInternalServerError)
		return
	}

	flashError, flashSuccess := popFlash(r)

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Members     []models.Member
		Form        *models.MemberForm
	}{
		Title:       "Members",
		CurrentPage: "members",
		Error:       flashError,
		Success:     flashSuccess,
		Members:     members,
		Form:        &models.MemberForm{},
	}

	renderTemplate(w, "admin", "members.html", templateData)
}

// Create handles POST /members
func (c *MembersController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.MemberForm{
		Firstname: r.FormValue("firstname"),
		Lastname:  r.FormValue("lastname"),
		Email:     r.FormValue("email"),
	}

	_, err := c.services.Member.CreateMember(r.Context(), form)
	if err != nil {
		// Reload page with form data and error
		members, loadErr := c.services.Member.GetAllMembers(r.Context())
		if loadErr != nil {
			http.Error(w, "Failed to load members: "+loadErr.Error(), http.StatusInternalServerError)
			return
		}

		templateData := struct {
			Title       string
			CurrentPage string
			Error       string
			Success     string
			Members     []models.Member
			Form        *models.MemberForm
		}{
			Title:       "Members",
			CurrentPage: "members",
			Error:       err.Error(),
			Members:     members,
			Form:        form,
		}

		renderTemplateWithStatus(w, http.StatusBadRequest, "admin", "members.html", templateData)
		return
	}

	setFlash(r, "success", "Member added")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// Edit handles GET /members/{id}/edit
func (c *MembersController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	member, err := c.services.Member.GetMemberByID(r.Context(), id)
	if err != nil {
		RenderErrorPage("admin")(w, r, http.StatusNotFound, "Member not found")
		return
	}

	c.renderEdit(w, r, http.StatusOK, member, &models.MemberForm{
		Firstname: member.Firstname,
		Lastname:  member.Lastname,
		Email:     member.Email,
	}, "")
}

// Update handles POST /members/{id}
func (c *MembersController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	form := &models.MemberForm{
		Firstname: r.FormValue("firstname"),
		Lastname:  r.FormValue("lastname"),
		Email:     r.FormValue("email"),
	}

	_, err = c.services.Member.UpdateMember(r.Context(), id, form)
	if err != nil {
		member, loadErr := c.services.Member.GetMemberByID(r.Context(), id)
		if loadErr != nil {
			RenderErrorPage("admin")(w, r, http.StatusNotFound, "Member not found")
			return
		}

		c.renderEdit(w, r, http.StatusBadRequest, member, form, err.Error())
		return
	}

	setFlash(r, "success", "Member updated")
	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// Delete handles POST /members/{id}/delete
func (c *MembersController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	if _, err := c.services.Member.DeleteMember(r.Context(), id); err != nil {
		setFlash(r, "error", "Failed to delete member: "+err.Error())
	} else {
		setFlash(r, "success", "Member deleted")
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// AddTeam handles POST /members/{id}/teams, adding the member to a team
func (c *MembersController) AddTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid member ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	teamID, _ := strconv.Atoi(r.FormValue("team_id"))
	form := &models.TeamMembershipForm{MemberID: id, TeamID: teamID}

	if _, err := c.services.Membership.AddMemberToTeam(r.Context(), form); err != nil {
		setFlash(r, "error", "Failed to add to team: "+err.Error())
	} else {
		setFlash(r, "success", "Added to team")
	}

	http.Redirect(w, r, "/members/"+chi.URLParam(r, "id")+"/edit", http.StatusSeeOther)
}

// RemoveTeam handles POST /members/{id}/teams/{membershipId}/delete
func (c *MembersController) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	membershipID, err := strconv.Atoi(chi.URLParam(r, "membershipId"))
	if err != nil {
		http.Error(w, "Invalid membership ID", http.StatusBadRequest)
		return
	}

	if _, err := c.services.Membership.RemoveMembership(r.Context(), membershipID); err != nil {
		setFlash(r, "error", "Failed to remove from team: "+err.Error())
	} else {
		setFlash(r, "success", "Removed from team")
	}

	http.Redirect(w, r, "/members/"+chi.URLParam(r, "id")+"/edit", http.StatusSeeOther)
}

// renderEdit renders the member edit page with memberships and team choices
func (c *MembersController) renderEdit(w http.ResponseWriter, r *http.Request, status int, member *models.Member, form *models.MemberForm, errorMessage string) {
	memberships, err := c.services.Member.GetMemberTeams(r.Context(), member.ID)
	if err != nil {
		http.Error(w, "Failed to load memberships: "+err.Error(), http.StatusInternalServerError)
		return
	}

	teams, err := c.services.Team.GetAllTeams(r.Context())
	if err != nil {
		http.Error(w, "Failed to load teams: "+err.Error(), http.StatusInternalServerError)
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
		Member      *models.Member
		Form        *models.MemberForm
		Memberships []models.TeamMembership
		Teams       []models.Team
	}{
		Title:       "Edit Member",
		CurrentPage: "members",
		Error:       flashError,
		Success:     flashSuccess,
		Member:      member,
		Form:        form,
		Memberships: memberships,
		Teams:       teams,
	}

	renderTemplateWithStatus(w, status, "admin", "member_edit.html", templateData)
}
