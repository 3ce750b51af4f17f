package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/services"
	"github.com/dandoon/sample-webapp/userctx"
)

// recordingLogService captures entries on channels so the async logger
// goroutine can be waited on
type recordingLogService struct {
	access chan *models.AccessLogEntry
	errors chan *models.ErrorLogEntry
}

func newRecordingLogService() *recordingLogService {
	return &recordingLogService{
		access: make(chan *models.AccessLogEntry, 10),
		errors: make(chan *models.ErrorLogEntry, 10),
	}
}

func (s *recordingLogService) Record(ctx context.Context, entry *models.AccessLogEntry) error {
	s.access <- entry
	return nil
}

func (s *recordingLogService) RecordError(ctx context.Context, entry *models.ErrorLogEntry) error {
	s.errors <- entry
	return nil
}

func (s *recordingLogService) GetAccessLog(ctx context.Context, period, app string, statusClass int) ([]services.AccessLogRow, error) {
	return nil, nil
}

func (s *recordingLogService) GetErrorLog(ctx context.Context, period, app string, statusClass int) ([]services.ErrorLogRow, error) {
	return nil, nil
}

func waitForAccess(t *testing.T, s *recordingLogService) *models.AccessLogEntry {
	t.Helper()
	select {
	case entry := <-s.access:
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for access log entry")
		return nil
	}
}

func waitForError(t *testing.T, s *recordingLogService) *models.ErrorLogEntry {
	t.Helper()
	select {
	case entry := <-s.errors:
		return entry
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for error log entry")
		return nil
	}
}

// identify mimics the auth middleware: the user identity goes onto a
// context derived inside the logger
func identify(email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := userctx.SetUserEmail(r.Context(), email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestAccessLogger(t *testing.T) {
	logSvc := newRecordingLogService()

	handler := AccessLogger(logSvc, models.AppAdmin)(identify("admin@example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest("GET", "/members?sort=name", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "10.0.0.5:1234"

	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := waitForAccess(t, logSvc)
	if entry.App != models.AppAdmin {
		t.Errorf("Expected app admin, got %s", entry.App)
	}
	if entry.Method != "GET" {
		t.Errorf("Expected method GET, got %s", entry.Method)
	}
	if entry.URL != "/members?sort=name" {
		t.Errorf("Expected URL with query string, got %s", entry.URL)
	}
	if entry.Status != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", entry.Status)
	}
	if entry.IP != "10.0.0.5" {
		t.Errorf("Expected IP without port, got %s", entry.IP)
	}
	if entry.UserAgent != "test-agent" {
		t.Errorf("Expected user agent to be recorded, got %s", entry.UserAgent)
	}
	if entry.UserEmail != "admin@example.com" {
		t.Errorf("Expected signed-in user email, got %s", entry.UserEmail)
	}
}

func TestAccessLoggerDefaultsStatus(t *testing.T) {
	logSvc := newRecordingLogService()

	// Handler that never calls WriteHeader
	handler := AccessLogger(logSvc, models.AppWWW)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	entry := waitForAccess(t, logSvc)
	if entry.Status != http.StatusOK {
		t.Errorf("Expected implicit 200, got %d", entry.Status)
	}
	if entry.UserEmail != "" {
		t.Errorf("Expected no user for anonymous request, got %s", entry.UserEmail)
	}
}

func TestGetIPAddress(t *testing.T) {
	// X-Forwarded-For wins, first address of a chain
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if ip := getIPAddress(req); ip != "203.0.113.7" {
		t.Errorf("Expected forwarded IP, got %s", ip)
	}

	// X-Real-IP next
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "203.0.113.9")
	if ip := getIPAddress(req); ip != "203.0.113.9" {
		t.Errorf("Expected real IP, got %s", ip)
	}

	// RemoteAddr with port stripped
	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.4:5678"
	if ip := getIPAddress(req); ip != "192.0.2.4" {
		t.Errorf("Expected remote address without port, got %s", ip)
	}
}

func TestRequireToken(t *testing.T) {
	tokenSvc := services.NewTokenService("test-secret", time.Hour)

	var gotUserID int
	var gotRole string
	handler := RequireToken(tokenSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = userctx.GetUserID(r.Context())
		gotRole = userctx.GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Missing credentials
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/members", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("Expected WWW-Authenticate challenge")
	}

	// Bad token
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/members", nil)
	req.SetBasicAuth("garbage", "x")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad token, got %d", rec.Code)
	}

	// Valid token passes claims through
	token, err := tokenSvc.Issue(42, models.RoleAdmin)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/members", nil)
	req.SetBasicAuth(token, "x")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for valid token, got %d", rec.Code)
	}
	if gotUserID != 42 {
		t.Errorf("Expected user ID 42 in context, got %d", gotUserID)
	}
	if gotRole != models.RoleAdmin {
		t.Errorf("Expected role admin in context, got %s", gotRole)
	}
}

func TestRecovery(t *testing.T) {
	logSvc := newRecordingLogService()

	var renderedStatus int
	render := func(w http.ResponseWriter, r *http.Request, status int, message string) {
		renderedStatus = status
		w.WriteHeader(status)
	}

	handler := Recovery(logSvc, models.AppAdmin, render)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something broke")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/members", nil))

	if renderedStatus != http.StatusInternalServerError {
		t.Errorf("Expected 500 error page, got %d", renderedStatus)
	}

	entry := waitForError(t, logSvc)
	if entry.Message != "something broke" {
		t.Errorf("Expected panic message recorded, got %s", entry.Message)
	}
	if entry.Stack == "" {
		t.Error("Expected stack trace to be recorded")
	}
	if entry.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500 recorded, got %d", entry.Status)
	}
}

func TestSecureHeaders(t *testing.T) {
	handler := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("Expected X-Frame-Options SAMEORIGIN, got %s", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("Expected X-Content-Type-Options nosniff, got %s", got)
	}
}
