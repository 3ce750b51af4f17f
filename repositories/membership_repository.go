package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dandoon/sample-webapp/models"
)

// MembershipRepository interface defines team membership database operations
type MembershipRepository interface {
	GetAll(ctx context.Context) ([]models.TeamMembership, error)
	GetByID(ctx context.Context, id int) (*models.TeamMembership, error)
	GetByMember(ctx context.Context, memberID int) ([]models.TeamMembership, error)
	GetByTeam(ctx context.Context, teamID int) ([]models.TeamMembership, error)
	Create(ctx context.Context, membership *models.TeamMembership) error
	Delete(ctx context.Context, id int) (*models.TeamMembership, error)
}

// membershipRepository implements MembershipRepository interface
type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sql.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// membershipSelect joins members and teams so list rows carry display names
const membershipSelect = `
	SELECT tm.id, tm.member_id, tm.team_id, tm.joined_on,
	       m.firstname || ' ' || m.lastname, t.name
	FROM team_members tm
	JOIN members m ON m.id = tm.member_id
	JOIN teams t ON t.id = tm.team_id
`

// GetAll retrieves all team memberships
func (r *membershipRepository) GetAll(ctx context.Context) ([]models.TeamMembership, error) {
	return r.query(ctx, membershipSelect+` ORDER BY t.name, m.lastname, m.firstname`)
}

// GetByID retrieves a membership by ID
func (r *membershipRepository) GetByID(ctx context.Context, id int) (*models.TeamMembership, error) {
	var ms models.TeamMembership
	err := r.db.QueryRowContext(ctx, membershipSelect+` WHERE tm.id = ?`, id).Scan(
		&ms.ID,
		&ms.MemberID,
		&ms.TeamID,
		&ms.JoinedOn,
		&ms.MemberName,
		&ms.TeamName,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team membership %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team membership: %w", err)
	}

	return &ms, nil
}

// GetByMember retrieves all memberships for a member
func (r *membershipRepository) GetByMember(ctx context.Context, memberID int) ([]models.TeamMembership, error) {
	return r.query(ctx, membershipSelect+` WHERE tm.member_id = ? ORDER BY t.name`, memberID)
}

// GetByTeam retrieves all memberships for a team
func (r *membershipRepository) GetByTeam(ctx context.Context, teamID int) ([]models.TeamMembership, error) {
	return r.query(ctx, membershipSelect+` WHERE tm.team_id = ? ORDER BY m.lastname, m.firstname`, teamID)
}

// Create adds a member to a team
func (r *membershipRepository) Create(ctx context.Context, membership *models.TeamMembership) error {
	if membership.JoinedOn.IsZero() {
		membership.JoinedOn = time.Now()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (member_id, team_id, joined_on) VALUES (?, ?, ?)`,
		membership.MemberID,
		membership.TeamID,
		membership.JoinedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("member %d in team %d: %w", membership.MemberID, membership.TeamID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create team membership: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	membership.ID = int(id)
	return nil
}

// Delete removes a membership by ID and returns the deleted row
func (r *membershipRepository) Delete(ctx context.Context, id int) (*models.TeamMembership, error) {
	membership, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete team membership: %w", err)
	}

	return membership, nil
}

// query runs a membership select and scans all rows
func (r *membershipRepository) query(ctx context.Context, query string, args ...interface{}) ([]models.TeamMembership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query team memberships: %w", err)
	}
	defer rows.Close()

	var memberships []models.TeamMembership
	for rows.Next() {
		var ms models.TeamMembership
		err := rows.Scan(
			&ms.ID,
			&ms.MemberID,
			&ms.TeamID,
			&ms.JoinedOn,
			&ms.MemberName,
			&ms.TeamName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team membership: %w", err)
		}
		memberships = append(memberships, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team memberships: %w", err)
	}

	return memberships, nil
}
