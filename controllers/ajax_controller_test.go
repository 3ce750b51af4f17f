package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandoon/sample-webapp/middleware"
	"github.com/dandoon/sample-webapp/services"
)

// relayFixture wires the ajax relay between a session-backed admin router and
// a stub api backend
type relayFixture struct {
	admin   *httptest.Server
	client  *http.Client
	tokens  services.TokenService
	lastReq struct {
		path      string
		query     string
		token     string
		hadAuth   bool
		accept    string
		rawMethod string
	}
}

func setupRelay(t *testing.T) *relayFixture {
	f := &relayFixture{
		tokens: services.NewTokenService("relay-secret", time.Hour),
	}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastReq.path = r.URL.Path
		f.lastReq.query = r.URL.RawQuery
		f.lastReq.rawMethod = r.Method
		f.lastReq.accept = r.Header.Get("Accept")
		f.lastReq.token, _, f.lastReq.hadAuth = r.BasicAuth()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"from":"backend"}`))
	}))
	t.Cleanup(backend.Close)

	srvs := &services.Services{Token: f.tokens}
	ctrl := NewAjaxController(srvs, backend.URL)

	sessionHandler, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "test_session",
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessionHandler)
	// Test-only route that plants a token in the session, standing in for
	// the login flow
	r.Get("/seed", func(w http.ResponseWriter, req *http.Request) {
		sess := session.GetSession(req)
		sess.Set(middleware.SessionToken, req.URL.Query().Get("token"))
		w.WriteHeader(http.StatusOK)
	})
	r.HandleFunc("/ajax/*", ctrl.Relay)

	f.admin = httptest.NewServer(r)
	t.Cleanup(f.admin.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	f.client = &http.Client{Jar: jar}

	return f
}

func (f *relayFixture) seed(t *testing.T, token string) {
	t.Helper()
	resp, err := f.client.Get(f.admin.URL + "/seed?token=" + token)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRelayForwardsWithToken(t *testing.T) {
	f := setupRelay(t)

	token, err := f.tokens.Issue(42, "admin")
	require.NoError(t, err)
	f.seed(t, token)

	resp, err := f.client.Get(f.admin.URL + "/ajax/members?lastname=Smith")
	require.NoError(t, err)
	defer resp.Body.Close()

	// Backend status, content type and body come back verbatim
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "backend", body["from"])

	// The api saw the path, query and token
	assert.Equal(t, "/members", f.lastReq.path)
	assert.Equal(t, "lastname=Smith", f.lastReq.query)
	assert.True(t, f.lastReq.hadAuth)
	assert.Equal(t, token, f.lastReq.token)
	assert.Equal(t, "application/json", f.lastReq.accept)

	claims, err := f.tokens.Verify(f.lastReq.token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
}

func TestRelayRefreshesExpiredToken(t *testing.T) {
	f := setupRelay(t)

	// Same secret, already expired
	expired, err := services.NewTokenService("relay-secret", -time.Minute).Issue(7, "admin")
	require.NoError(t, err)
	f.seed(t, expired)

	resp, err := f.client.Get(f.admin.URL + "/ajax/teams")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusTeapot, resp.StatusCode)

	// The forwarded token is a fresh one with the original claims
	assert.NotEqual(t, expired, f.lastReq.token)
	claims, err := f.tokens.Verify(f.lastReq.token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestRelayRejectsForeignToken(t *testing.T) {
	f := setupRelay(t)

	// Signed with a different secret; cannot be verified or refreshed
	forged, err := services.NewTokenService("other-secret", time.Hour).Issue(1, "admin")
	require.NoError(t, err)
	f.seed(t, forged)

	resp, err := f.client.Get(f.admin.URL + "/ajax/members")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRelayWithoutSessionToken(t *testing.T) {
	f := setupRelay(t)

	resp, err := f.client.Get(f.admin.URL + "/ajax/members")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "no api token")
}

func TestRelayForwardsBody(t *testing.T) {
	f := setupRelay(t)

	token, err := f.tokens.Issue(1, "admin")
	require.NoError(t, err)
	f.seed(t, token)

	resp, err := f.client.Post(f.admin.URL+"/ajax/members", "application/json",
		strings.NewReader(`{"firstname":"Jo"}`))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "POST", f.lastReq.rawMethod)
	assert.Equal(t, "/members", f.lastReq.path)
}
