package models

import "time"

// App names recorded against log entries
const (
	AppWWW   = "www"
	AppAdmin = "admin"
	AppAPI   = "api"
)

// AccessLogEntry represents a single timed request in the capped access log
type AccessLogEntry struct {
	ID         int64
	Timestamp  time.Time
	App        string
	Method     string
	URL        string
	Status     int
	DurationMs float64
	IP         string
	UserAgent  string
	UserEmail  string
}

// ErrorLogEntry represents a handler failure in the capped error log
type ErrorLogEntry struct {
	ID        int64
	Timestamp time.Time
	App       string
	Method    string
	URL       string
	Status    int
	Message   string
	Stack     string
}

// LogFilter selects log entries for the dev log viewers
type LogFilter struct {
	Since       time.Time // zero value means no lower bound
	App         string    // "" means all apps
	StatusClass int       // 2, 4, 5 for 2xx/4xx/5xx; 0 means all
}
