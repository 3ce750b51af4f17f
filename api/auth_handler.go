package api

import (
	"net/http"
)

// Auth handles GET /auth: Basic email/password credentials are verified
// against the users table and exchanged for a signed token the caller uses
// as the Basic username on every other api route.
func (h *Handlers) Auth(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="api"`)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credentials required"})
		return
	}

	user, err := h.services.Auth.VerifyCredentials(r.Context(), email, password)
	if err != nil {
		w.Header().Set("WWW-Authenticate", `Basic realm="api"`)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := h.services.Token.Issue(user.ID, user.Role)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to issue token"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":   user.ID,
		"role": user.Role,
		"jwt":  token,
	})
}
