package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSONErrorEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	jsonError(rec, httptest.NewRequest("GET", "/", nil), http.StatusInternalServerError, `broken "quote" and \slash`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected valid JSON regardless of message content, got: %v", err)
	}
	if body["error"] != `broken "quote" and \slash` {
		t.Errorf("Expected message to round-trip, got %q", body["error"])
	}
}

func TestHostDispatch(t *testing.T) {
	name := func(label string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(label))
		})
	}

	dispatch := hostDispatch(name("www"), name("admin"), name("api"))

	cases := []struct {
		host string
		want string
	}{
		{"example.com", "www"},
		{"www.example.com", "www"},
		{"admin.example.com", "admin"},
		{"api.example.com", "api"},
		{"api.example.com:8080", "api"},
		{"localhost:8080", "www"},
	}

	for _, c := range cases {
		req := httptest.NewRequest("GET", "/", nil)
		req.Host = c.host
		rec := httptest.NewRecorder()
		dispatch.ServeHTTP(rec, req)

		if got := rec.Body.String(); got != c.want {
			t.Errorf("Host %s: expected %s app, got %s", c.host, c.want, got)
		}
	}
}
