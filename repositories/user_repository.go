package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dandoon/sample-webapp/models"
)

// UserRepository interface defines login user database operations
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	SetResetToken(ctx context.Context, id int, token string, expires time.Time) error
	ClearResetToken(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userSelect = `SELECT id, firstname, lastname, email, password, role, reset_token, reset_expires FROM users`

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getOne(ctx, userSelect+` WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, userSelect+` WHERE email = ?`, email)
}

// GetByResetToken retrieves a user by an unexpired password-reset token
func (r *userRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, userSelect+` WHERE reset_token = ? AND reset_expires > ?`, token, time.Now())
}

// Create creates a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (firstname, lastname, email, password, role) VALUES (?, ?, ?, ?, ?)`,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.Password,
		user.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	user.ID = int(id)
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return r.exec(ctx, id, `UPDATE users SET password = ? WHERE id = ?`, passwordHash, id)
}

// SetResetToken stores a password-reset token and its expiry
func (r *userRepository) SetResetToken(ctx context.Context, id int, token string, expires time.Time) error {
	return r.exec(ctx, id, `UPDATE users SET reset_token = ?, reset_expires = ? WHERE id = ?`, token, expires, id)
}

// ClearResetToken removes any password-reset token
func (r *userRepository) ClearResetToken(ctx context.Context, id int) error {
	return r.exec(ctx, id, `UPDATE users SET reset_token = NULL, reset_expires = NULL WHERE id = ?`, id)
}

// Count returns the total number of users
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// getOne scans a single user row
func (r *userRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	var resetToken sql.NullString
	var resetExpires sql.NullTime

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.Password,
		&user.Role,
		&resetToken,
		&resetExpires,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if resetToken.Valid {
		user.ResetToken = resetToken.String
	}
	if resetExpires.Valid {
		user.ResetExpires = &resetExpires.Time
	}

	return &user, nil
}

// exec runs an update against a single user and checks it matched a row
func (r *userRepository) exec(ctx context.Context, id int, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	return nil
}
