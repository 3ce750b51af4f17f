package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
)

// ErrorRenderer writes the error response for a recovered panic; the www and
// admin apps render a templated page, the api app renders JSON.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int, message string)

// Recovery catches handler panics, records them in the capped error log, and
// renders a 500 via the app's error renderer.
func Recovery(logService services.LogService, app string, render ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				message := fmt.Sprintf("%v", rvr)
				stack := string(debug.Stack())
				log.Printf("Panic in %s %s: %s", r.Method, r.URL.Path, message)

				entry := &models.ErrorLogEntry{
					App:     app,
					Method:  r.Method,
					URL:     r.URL.RequestURI(),
					Status:  http.StatusInternalServerError,
					Message: message,
					Stack:   stack,
				}
				go func() {
					if err := logService.RecordError(context.Background(), entry); err != nil {
						log.Printf("Failed to record error log: %v", err)
					}
				}()

				render(w, r, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
