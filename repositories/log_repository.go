package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dandoon/sample-webapp/models"
)

// LogRepository handles the capped access/error log stores. Insertion order
// is the autoincrement id; rows beyond the cap are trimmed oldest-first on
// every insert, giving capped-collection semantics on a plain SQLite table.
type LogRepository interface {
	InsertAccess(ctx context.Context, entry *models.AccessLogEntry) error
	InsertError(ctx context.Context, entry *models.ErrorLogEntry) error
	ListAccess(ctx context.Context, filter models.LogFilter, limit int) ([]models.AccessLogEntry, error)
	ListError(ctx context.Context, filter models.LogFilter, limit int) ([]models.ErrorLogEntry, error)
	CountAccess(ctx context.Context) (int, error)
	CountError(ctx context.Context) (int, error)
}

// logRepository implements LogRepository interface
type logRepository struct {
	db  *sql.DB
	cap int
}

// NewLogRepository creates a new log repository keeping at most cap rows per table
func NewLogRepository(db *sql.DB, cap int) LogRepository {
	return &logRepository{db: db, cap: cap}
}

// InsertAccess records a timed request and trims the table to the cap
func (r *logRepository) InsertAccess(ctx context.Context, entry *models.AccessLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_log (timestamp, app, method, url, status, duration_ms, ip, user_agent, user_email)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp,
		entry.App,
		entry.Method,
		entry.URL,
		entry.Status,
		entry.DurationMs,
		entry.IP,
		entry.UserAgent,
		entry.UserEmail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert access log entry: %w", err)
	}

	return r.trim(ctx, "access_log")
}

// InsertError records a handler failure and trims the table to the cap
func (r *logRepository) InsertError(ctx context.Context, entry *models.ErrorLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO error_log (timestamp, app, method, url, status, message, stack)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp,
		entry.App,
		entry.Method,
		entry.URL,
		entry.Status,
		entry.Message,
		entry.Stack,
	)
	if err != nil {
		return fmt.Errorf("failed to insert error log entry: %w", err)
	}

	return r.trim(ctx, "error_log")
}

// ListAccess retrieves access log entries newest-first
func (r *logRepository) ListAccess(ctx context.Context, filter models.LogFilter, limit int) ([]models.AccessLogEntry, error) {
	query := `SELECT id, timestamp, app, method, url, status, duration_ms, ip, user_agent, user_email FROM access_log`
	query, args := applyLogFilter(query, filter, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query access log: %w", err)
	}
	defer rows.Close()

	var entries []models.AccessLogEntry
	for rows.Next() {
		var e models.AccessLogEntry
		err := rows.Scan(&e.ID, &e.Timestamp, &e.App, &e.Method, &e.URL, &e.Status,
			&e.DurationMs, &e.IP, &e.UserAgent, &e.UserEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access log entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating access log: %w", err)
	}

	return entries, nil
}

// ListError retrieves error log entries newest-first
func (r *logRepository) ListError(ctx context.Context, filter models.LogFilter, limit int) ([]models.ErrorLogEntry, error) {
	query := `SELECT id, timestamp, app, method, url, status, message, stack FROM error_log`
	query, args := applyLogFilter(query, filter, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query error log: %w", err)
	}
	defer rows.Close()

	var entries []models.ErrorLogEntry
	for rows.Next() {
		var e models.ErrorLogEntry
		err := rows.Scan(&e.ID, &e.Timestamp, &e.App, &e.Method, &e.URL, &e.Status, &e.Message, &e.Stack)
		if err != nil {
			return nil, fmt.Errorf("failed to scan error log entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating error log: %w", err)
	}

	return entries, nil
}

// CountAccess returns the number of access log rows
func (r *logRepository) CountAccess(ctx context.Context) (int, error) {
	return r.count(ctx, "access_log")
}

// CountError returns the number of error log rows
func (r *logRepository) CountError(ctx context.Context) (int, error) {
	return r.count(ctx, "error_log")
}

func (r *logRepository) count(ctx context.Context, table string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// trim discards rows beyond the cap, oldest first
func (r *logRepository) trim(ctx context.Context, table string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE id NOT IN (SELECT id FROM `+table+` ORDER BY id DESC LIMIT ?)`,
		r.cap,
	)
	if err != nil {
		return fmt.Errorf("failed to trim %s: %w", table, err)
	}
	return nil
}

// applyLogFilter appends WHERE/ORDER/LIMIT clauses for a log filter
func applyLogFilter(query string, filter models.LogFilter, limit int) (string, []interface{}) {
	var args []interface{}
	sep := " WHERE "

	if !filter.Since.IsZero() {
		query += sep + "timestamp >= ?"
		args = append(args, filter.Since)
		sep = " AND "
	}
	if filter.App != "" {
		query += sep + "app = ?"
		args = append(args, filter.App)
		sep = " AND "
	}
	if filter.StatusClass != 0 {
		query += sep + "status >= ? AND status < ?"
		args = append(args, filter.StatusClass*100, (filter.StatusClass+1)*100)
	}

	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return query, args
}
