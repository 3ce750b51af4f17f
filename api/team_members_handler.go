package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dandoon/sample-webapp/models"
)

// membershipBody tolerates both JSON numbers and form/JSON strings for the
// two ids
type membershipBody struct {
	MemberID interface{} `json:"member_id"`
	TeamID   interface{} `json:"team_id"`
}

// toInt coerces a decoded JSON value to an int; 0 when it is neither a
// number nor a numeric string
func toInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

// ListTeamMembers handles GET /team-members
func (h *Handlers) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.services.Membership.GetAllMemberships(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, memberships)
}

// GetTeamMember handles GET /team-members/{id}
func (h *Handlers) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	membership, err := h.services.Membership.GetMembershipByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}

// CreateTeamMember handles POST /team-members: duplicate pairs return 409
func (h *Handlers) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var body membershipBody
	if err := decodeBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	form := &models.TeamMembershipForm{
		MemberID: toInt(body.MemberID),
		TeamID:   toInt(body.TeamID),
	}

	membership, err := h.services.Membership.AddMemberToTeam(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/team-members/%d", membership.ID))
	writeJSON(w, http.StatusCreated, membership)
}

// DeleteTeamMember handles DELETE /team-members/{id}; no PATCH exists for
// the join resource
func (h *Handlers) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	membership, err := h.services.Membership.RemoveMembership(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, membership)
}
