package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

// TeamService interface defines team management business logic
type TeamService interface {
	GetAllTeams(ctx context.Context) ([]models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	FindTeams(ctx context.Context, filters map[string]string) ([]models.Team, error)
	CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) (*models.Team, error)
	GetTeamMembers(ctx context.Context, id int) ([]models.TeamMembership, error)
	GetTeamCount(ctx context.Context) (int, error)
}

// teamService implements TeamService interface
type teamService struct {
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo repositories.TeamRepository, membershipRepo repositories.MembershipRepository) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
	}
}

// GetAllTeams retrieves all teams
func (s *teamService) GetAllTeams(ctx context.Context) ([]models.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

// GetTeamByID retrieves a team by ID
func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team %d: %w", id, repositories.ErrNotFound)
	}
	return s.teamRepo.GetByID(ctx, id)
}

// FindTeams retrieves teams matching exact column filters
func (s *teamService) FindTeams(ctx context.Context, filters map[string]string) ([]models.Team, error) {
	return s.teamRepo.Find(ctx, filters)
}

// CreateTeam creates a new team with validation
func (s *teamService) CreateTeam(ctx context.Context, form *models.TeamForm) (*models.Team, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errors, ", "))
	}

	team := &models.Team{Name: strings.TrimSpace(form.Name)}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	return team, nil
}

// UpdateTeam updates an existing team
func (s *teamService) UpdateTeam(ctx context.Context, id int, form *models.TeamForm) (*models.Team, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errors, ", "))
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	team.Name = strings.TrimSpace(form.Name)

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	return team, nil
}

// DeleteTeam deletes a team; memberships go with it via cascade
func (s *teamService) DeleteTeam(ctx context.Context, id int) (*models.Team, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team %d: %w", id, repositories.ErrNotFound)
	}
	return s.teamRepo.Delete(ctx, id)
}

// GetTeamMembers retrieves the team's memberships
func (s *teamService) GetTeamMembers(ctx context.Context, id int) ([]models.TeamMembership, error) {
	return s.membershipRepo.GetByTeam(ctx, id)
}

// GetTeamCount returns the total number of teams
func (s *teamService) GetTeamCount(ctx context.Context) (int, error) {
	return s.teamRepo.Count(ctx)
}
