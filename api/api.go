// Package api implements the JSON REST handlers of the api app.
package api

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/repositories"
	"github.com/dandoon/sample-webapp/services"
)

// Handlers holds the api handler set
type Handlers struct {
	services *services.Services
}

// NewHandlers creates the api handler set
func NewHandlers(services *services.Services) *Handlers {
	return &Handlers{services: services}
}

// writeJSON writes a JSON response with status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps a service/repository error onto the api status-code
// contract and writes it as JSON
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repositories.ErrBadFilter):
		status = http.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		status = http.StatusForbidden
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeList writes a resource list, or 204 No Content when it is empty
func writeList[T any](w http.ResponseWriter, items []T) {
	if len(items) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// idParam parses the {id} route parameter
func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, repositories.ErrNotFound
	}
	return id, nil
}

// queryFilters flattens the query string into exact-match column filters
func queryFilters(values url.Values) map[string]string {
	filters := make(map[string]string)
	for key, vals := range values {
		if len(vals) > 0 {
			filters[key] = vals[0]
		}
	}
	return filters
}

// decodeBody decodes a JSON or form-encoded request body into dst. JSON
// bodies decode directly into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data" {
		if ct == "multipart/form-data" {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				return err
			}
		} else if err := r.ParseForm(); err != nil {
			return err
		}
		// Re-encode the form as JSON so both content types share one path
		form := make(map[string]string)
		for key, vals := range r.PostForm {
			if len(vals) > 0 {
				form[key] = vals[0]
			}
		}
		raw, err := json.Marshal(form)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	}

	return json.NewDecoder(r.Body).Decode(dst)
}
