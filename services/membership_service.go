package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

// MembershipService interface defines team membership business logic
type MembershipService interface {
	GetAllMemberships(ctx context.Context) ([]models.TeamMembership, error)
	GetMembershipByID(ctx context.Context, id int) (*models.TeamMembership, error)
	AddMemberToTeam(ctx context.Context, form *models.TeamMembershipForm) (*models.TeamMembership, error)
	RemoveMembership(ctx context.Context, id int) (*models.TeamMembership, error)
}

// membershipService implements MembershipService interface
type membershipService struct {
	membershipRepo repositories.MembershipRepository
	memberRepo     repositories.MemberRepository
	teamRepo       repositories.TeamRepository
}

// NewMembershipService creates a new membership service
func NewMembershipService(membershipRepo repositories.MembershipRepository, memberRepo repositories.MemberRepository, teamRepo repositories.TeamRepository) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		memberRepo:     memberRepo,
		teamRepo:       teamRepo,
	}
}

// GetAllMemberships retrieves all team memberships
func (s *membershipService) GetAllMemberships(ctx context.Context) ([]models.TeamMembership, error) {
	return s.membershipRepo.GetAll(ctx)
}

// GetMembershipByID retrieves a membership by ID
func (s *membershipService) GetMembershipByID(ctx context.Context, id int) (*models.TeamMembership, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team membership %d: %w", id, repositories.ErrNotFound)
	}
	return s.membershipRepo.GetByID(ctx, id)
}

// AddMemberToTeam creates a membership after checking both sides exist
func (s *membershipService) AddMemberToTeam(ctx context.Context, form *models.TeamMembershipForm) (*models.TeamMembership, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errors, ", "))
	}

	if _, err := s.memberRepo.GetByID(ctx, form.MemberID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, form.TeamID); err != nil {
		return nil, err
	}

	membership := &models.TeamMembership{
		MemberID: form.MemberID,
		TeamID:   form.TeamID,
	}

	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	// Re-read for the joined display names
	return s.membershipRepo.GetByID(ctx, membership.ID)
}

// RemoveMembership deletes a membership by ID
func (s *membershipService) RemoveMembership(ctx context.Context, id int) (*models.TeamMembership, error) {
	if id <= 0 {
		return nil, fmt.Errorf("team membership %d: %w", id, repositories.ErrNotFound)
	}
	return s.membershipRepo.Delete(ctx, id)
}
