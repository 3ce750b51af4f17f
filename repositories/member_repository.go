package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dandoon/sample-webapp/models"
)

// MemberRepository interface defines member database operations
type MemberRepository interface {
	GetAll(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id int) (*models.Member, error)
	Find(ctx context.Context, filters map[string]string) ([]models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id int) (*models.Member, error)
	Count(ctx context.Context) (int, error)
}

// membercolumns are the columns list queries may filter by
var memberColumns = map[string]bool{
	"firstname": true,
	"lastname":  true,
	"email":     true,
}

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *sql.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{db: db}
}

const memberSelect = `SELECT id, firstname, lastname, email, joined_on FROM members`

// GetAll retrieves all members ordered by name
func (r *memberRepository) GetAll(ctx context.Context) ([]models.Member, error) {
	rows, err := r.db.QueryContext(ctx, memberSelect+` ORDER BY lastname ASC, firstname ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// GetByID retrieves a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	var member models.Member
	err := r.db.QueryRowContext(ctx, memberSelect+` WHERE id = ?`, id).Scan(
		&member.ID,
		&member.Firstname,
		&member.Lastname,
		&member.Email,
		&member.JoinedOn,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

// Find retrieves members matching exact column values. Unknown filter fields
// return ErrBadFilter.
func (r *memberRepository) Find(ctx context.Context, filters map[string]string) ([]models.Member, error) {
	query := memberSelect
	var clauses []string
	var args []interface{}

	for field, value := range filters {
		if !memberColumns[field] {
			return nil, fmt.Errorf("%w: %s", ErrBadFilter, field)
		}
		clauses = append(clauses, field+" = ?")
		args = append(args, value)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY lastname ASC, firstname ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	return scanMembers(rows)
}

// Create creates a new member
func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.JoinedOn.IsZero() {
		member.JoinedOn = time.Now()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO members (firstname, lastname, email, joined_on) VALUES (?, ?, ?, ?)`,
		member.Firstname,
		member.Lastname,
		member.Email,
		member.JoinedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member with email %s: %w", member.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	member.ID = int(id)
	return nil
}

// Update updates an existing member
func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE members SET firstname = ?, lastname = ?, email = ? WHERE id = ?`,
		member.Firstname,
		member.Lastname,
		member.Email,
		member.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member with email %s: %w", member.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member %d: %w", member.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a member by ID and returns the deleted row
func (r *memberRepository) Delete(ctx context.Context, id int) (*models.Member, error) {
	member, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete member: %w", err)
	}

	return member, nil
}

// Count returns the total number of members
func (r *memberRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}

	return count, nil
}

// scanMembers scans all rows into a member slice
func scanMembers(rows *sql.Rows) ([]models.Member, error) {
	var members []models.Member
	for rows.Next() {
		var member models.Member
		err := rows.Scan(
			&member.ID,
			&member.Firstname,
			&member.Lastname,
			&member.Email,
			&member.JoinedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}
