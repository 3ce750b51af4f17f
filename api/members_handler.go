package api

import (
	"fmt"
	"net/http"

	"github.com/dandoon/sample-webapp/models"
)

// ListMembers handles GET /members, filterable by exact column values from
// the query string; empty result sets return 204
func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.services.Member.FindMembers(r.Context(), queryFilters(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeList(w, members)
}

// GetMember handles GET /members/{id}
func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := h.services.Member.GetMemberByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// CreateMember handles POST /members: 201 with a Location header on
// success, 403 on validation failure, 409 on duplicate email
func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var form models.MemberForm
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	member, err := h.services.Member.CreateMember(r.Context(), &form)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/members/%d", member.ID))
	writeJSON(w, http.StatusCreated, member)
}

// UpdateMember handles PATCH /members/{id}, returning the updated resource
func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Start from the stored row so a partial body only changes what it names
	current, err := h.services.Member.GetMemberByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	form := models.MemberForm{
		Firstname: current.Firstname,
		Lastname:  current.Lastname,
		Email:     current.Email,
	}
	if err := decodeBody(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	member, err := h.services.Member.UpdateMember(r.Context(), id, &form)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// DeleteMember handles DELETE /members/{id}, returning the deleted resource
func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	member, err := h.services.Member.DeleteMember(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}
