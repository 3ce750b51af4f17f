package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dandoon/sample-webapp/models"
)

// TeamRepository interface defines team database operations
type TeamRepository interface {
	GetAll(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Find(ctx context.Context, filters map[string]string) ([]models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) (*models.Team, error)
	Count(ctx context.Context) (int, error)
}

var teamColumns = map[string]bool{
	"name": true,
}

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) TeamRepository {
	return &teamRepository{db: db}
}

// GetAll retrieves all teams ordered by name
func (r *teamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	return r.Find(ctx, nil)
}

// GetByID retrieves a team by ID
func (r *teamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	var team models.Team
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM teams WHERE id = ?`, id).
		Scan(&team.ID, &team.Name)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// Find retrieves teams matching exact column values. Unknown filter fields
// return ErrBadFilter.
func (r *teamRepository) Find(ctx context.Context, filters map[string]string) ([]models.Team, error) {
	query := `SELECT id, name FROM teams`
	var clauses []string
	var args []interface{}

	for field, value := range filters {
		if !teamColumns[field] {
			return nil, fmt.Errorf("%w: %s", ErrBadFilter, field)
		}
		clauses = append(clauses, field+" = ?")
		args = append(args, value)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// Create creates a new team
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO teams (name) VALUES (?)`, team.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team with name %s: %w", team.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	team.ID = int(id)
	return nil
}

// Update updates an existing team
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET name = ? WHERE id = ?`, team.Name, team.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("team with name %s: %w", team.Name, ErrDuplicate)
		}
		return fmt.Errorf("failed to update team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("team %d: %w", team.ID, ErrNotFound)
	}

	return nil
}

// Delete deletes a team by ID and returns the deleted row
func (r *teamRepository) Delete(ctx context.Context, id int) (*models.Team, error) {
	team, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete team: %w", err)
	}

	return team, nil
}

// Count returns the total number of teams
func (r *teamRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}

	return count, nil
}
