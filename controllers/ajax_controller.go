package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"

	"github.com/dandoon/sample-webapp/middleware"
	"github.com/dandoon/sample-webapp/services"
)

// refreshWindow: tokens this close to expiry are re-issued before forwarding
const refreshWindow = time.Minute

// AjaxController forwards browser requests from the admin app to the api
// host, transparently refreshing the session's api token when it has
// expired. The forwarded request authenticates with Basic auth carrying the
// token as username.
type AjaxController struct {
	services *services.Services
	apiHost  string
	client   *http.Client
}

// NewAjaxController creates a new ajax relay controller
func NewAjaxController(services *services.Services, apiHost string) *AjaxController {
	return &AjaxController{
		services: services,
		apiHost:  strings.TrimRight(apiHost, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Relay handles any /ajax/* request
func (c *AjaxController) Relay(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	token, _ := sess.Get(middleware.SessionToken).(string)
	if token == "" {
		relayError(w, http.StatusUnauthorized, "no api token in session")
		return
	}

	token, err := c.freshToken(token)
	if err != nil {
		relayError(w, http.StatusUnauthorized, "api token cannot be renewed")
		return
	}
	sess.Set(middleware.SessionToken, token)

	target := c.apiHost + "/" + chi.URLParam(r, "*")
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		relayError(w, http.StatusBadGateway, "failed to build api request: "+err.Error())
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(token, "x")

	resp, err := c.client.Do(req)
	if err != nil {
		relayError(w, http.StatusBadGateway, "api request failed: "+err.Error())
		return
	}
	defer resp.Body.Close()

	// Relay status, content type and body verbatim
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	io.Copy(w, resp.Body)
}

// freshToken returns a token safe to forward: the current one if still
// comfortably valid, otherwise one re-signed from the same claims
func (c *AjaxController) freshToken(token string) (string, error) {
	claims, err := c.services.Token.Verify(token)
	if err == nil && time.Until(claims.ExpiresAt) > refreshWindow {
		return token, nil
	}

	// Expired or about to expire; the signing secret is shared with the api
	// so the relay can re-issue without a round trip to /auth
	return c.services.Token.Refresh(token)
}

// relayError writes a JSON error, matching what the api would return
func relayError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
