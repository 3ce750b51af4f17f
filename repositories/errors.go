package repositories

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Sentinel errors; handlers map them to HTTP statuses.
var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a unique constraint
	ErrDuplicate = errors.New("already exists")
	// ErrBadFilter is returned when a list filter names an unknown column
	ErrBadFilter = errors.New("unrecognised filter field")
)

// isUniqueViolation reports whether err is a SQLite unique constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
