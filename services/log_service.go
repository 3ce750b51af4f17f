package services

import (
	"context"
	"strings"
	"time"

	"github.com/mileusna/useragent"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

// viewerLimit caps how many rows the dev log viewers render
const viewerLimit = 500

// AccessLogRow is an access log entry annotated for display
type AccessLogRow struct {
	models.AccessLogEntry
	Agent   string // human-readable browser/OS
	IsError bool   // 4xx/5xx response
}

// ErrorLogRow is an error log entry annotated for display
type ErrorLogRow struct {
	models.ErrorLogEntry
}

// LogService prepares capped-store records for the dev log viewers
type LogService interface {
	Record(ctx context.Context, entry *models.AccessLogEntry) error
	RecordError(ctx context.Context, entry *models.ErrorLogEntry) error
	GetAccessLog(ctx context.Context, period, app string, statusClass int) ([]AccessLogRow, error)
	GetErrorLog(ctx context.Context, period, app string, statusClass int) ([]ErrorLogRow, error)
}

// logService implements LogService interface
type logService struct {
	logRepo repositories.LogRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo repositories.LogRepository) LogService {
	return &logService{logRepo: logRepo}
}

// Record stores an access log entry
func (s *logService) Record(ctx context.Context, entry *models.AccessLogEntry) error {
	return s.logRepo.InsertAccess(ctx, entry)
}

// RecordError stores an error log entry
func (s *logService) RecordError(ctx context.Context, entry *models.ErrorLogEntry) error {
	return s.logRepo.InsertError(ctx, entry)
}

// GetAccessLog retrieves filtered access log rows, newest first, with the
// user agent annotated into a readable browser/OS string
func (s *logService) GetAccessLog(ctx context.Context, period, app string, statusClass int) ([]AccessLogRow, error) {
	filter := models.LogFilter{
		Since:       PeriodStart(period),
		App:         app,
		StatusClass: statusClass,
	}

	entries, err := s.logRepo.ListAccess(ctx, filter, viewerLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]AccessLogRow, len(entries))
	for i, entry := range entries {
		rows[i] = AccessLogRow{
			AccessLogEntry: entry,
			Agent:          FormatUserAgent(entry.UserAgent),
			IsError:        entry.Status >= 400,
		}
	}

	return rows, nil
}

// GetErrorLog retrieves filtered error log rows, newest first
func (s *logService) GetErrorLog(ctx context.Context, period, app string, statusClass int) ([]ErrorLogRow, error) {
	filter := models.LogFilter{
		Since:       PeriodStart(period),
		App:         app,
		StatusClass: statusClass,
	}

	entries, err := s.logRepo.ListError(ctx, filter, viewerLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]ErrorLogRow, len(entries))
	for i, entry := range entries {
		rows[i] = ErrorLogRow{ErrorLogEntry: entry}
	}

	return rows, nil
}

// PeriodStart maps a viewer time-window facet to its lower bound. Unknown
// or empty periods mean no bound.
func PeriodStart(period string) time.Time {
	now := time.Now()
	switch period {
	case "hour":
		return now.Add(-time.Hour)
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

// FormatUserAgent condenses a raw user-agent header into "Browser x.y / OS"
func FormatUserAgent(raw string) string {
	if raw == "" {
		return "–"
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" {
		return raw
	}

	var b strings.Builder
	b.WriteString(ua.Name)
	if ua.Version != "" {
		b.WriteString(" ")
		b.WriteString(ua.Version)
	}
	if ua.OS != "" {
		b.WriteString(" / ")
		b.WriteString(ua.OS)
		if ua.OSVersion != "" {
			b.WriteString(" ")
			b.WriteString(ua.OSVersion)
		}
	}
	if ua.Bot {
		b.WriteString(" (bot)")
	}

	return b.String()
}
