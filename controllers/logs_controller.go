package controllers

import (
	"net/http"
	"strconv"

	"github.com/dandoon/sample-webapp/services"
)

// LogsController renders the dev log viewers over the capped stores
type LogsController struct {
	services *services.Services
}

// NewLogsController creates a new logs controller
func NewLogsController(services *services.Services) *LogsController {
	return &LogsController{
		services: services,
	}
}

// logViewerFacets carries the selected facets back into the template
type logViewerFacets struct {
	Period      string
	App         string
	StatusClass int
}

// facets reads the viewer facets from the query string
func facets(r *http.Request) logViewerFacets {
	statusClass, _ := strconv.Atoi(r.URL.Query().Get("status"))
	if statusClass != 2 && statusClass != 3 && statusClass != 4 && statusClass != 5 {
		statusClass = 0
	}

	return logViewerFacets{
		Period:      r.URL.Query().Get("period"),
		App:         r.URL.Query().Get("app"),
		StatusClass: statusClass,
	}
}

// AccessLog handles GET /dev/log-access
func (c *LogsController) AccessLog(w http.ResponseWriter, r *http.Request) {
	f := facets(r)

	rows, err := c.services.Log.GetAccessLog(r.Context(), f.Period, f.App, f.StatusClass)
	if err != nil {
		http.Error(w, "Failed to load access log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Facets      logViewerFacets
		Rows        []services.AccessLogRow
	}{
		Title:       "Access Log",
		CurrentPage: "logs",
		Facets:      f,
		Rows:        rows,
	}

	renderTemplate(w, "admin", "log_access.html", templateData)
}

// ErrorLog handles GET /dev/log-error
func (c *LogsController) ErrorLog(w http.ResponseWriter, r *http.Request) {
	f := facets(r)

	rows, err := c.services.Log.GetErrorLog(r.Context(), f.Period, f.App, f.StatusClass)
	if err != nil {
		http.Error(w, "Failed to load error log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		Error       string
		Success     string
		Facets      logViewerFacets
		Rows        []services.ErrorLogRow
	}{
		Title:       "Error Log",
		CurrentPage: "logs",
		Facets:      f,
		Rows:        rows,
	}

	renderTemplate(w, "admin", "log_error.html", templateData)
}
