package api

import (
	"fmt"
	"net/http"

	"github.com/dandoon/sample-webapp/models"
)

// ListTeams handles GET /teams, filterable by exact column values
func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.services.Team.FindTeams(r.Context(), queryFilters(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, teams)
}

// GetTeam handles GET /teams/{id}
func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	team, err := h.services.Team.GetTeamByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

// CreateTeam handles POST /teams
func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var form models.TeamForm
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	team, err := h.services.Team.CreateTeam(r.Context(), &form)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/teams/%d", team.ID))
	writeJSON(w, http.StatusCreated, team)
}

// UpdateTeam handles PATCH /teams/{id}, returning the updated resource
func (h *Handlers) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	current, err := h.services.Team.GetTeamByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	form := models.TeamForm{Name: current.Name}
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	team, err := h.services.Team.UpdateTeam(r.Context(), id, &form)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}

// DeleteTeam handles DELETE /teams/{id}, returning the deleted resource
func (h *Handlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	team, err := h.services.Team.DeleteTeam(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, team)
}
