package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

// MemberService interface defines member management business logic
type MemberService interface {
	GetAllMembers(ctx context.Context) ([]models.Member, error)
	GetMemberByID(ctx context.Context, id int) (*models.Member, error)
	FindMembers(ctx context.Context, filters map[string]string) ([]models.Member, error)
	CreateMember(ctx context.Context, form *models.MemberForm) (*models.Member, error)
	UpdateMember(ctx context.Context, id int, form *models.MemberForm) (*models.Member, error)
	DeleteMember(ctx context.Context, id int) (*models.Member, error)
	GetMemberTeams(ctx context.Context, id int) ([]models.TeamMembership, error)
	GetMemberCount(ctx context.Context) (int, error)
}

// memberService implements MemberService interface
type memberService struct {
	memberRepo     repositories.MemberRepository
	membershipRepo repositories.MembershipRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, membershipRepo repositories.MembershipRepository) MemberService {
	return &memberService{
		memberRepo:     memberRepo,
		membershipRepo: membershipRepo,
	}
}

// GetAllMembers retrieves all members
func (s *memberService) GetAllMembers(ctx context.Context) ([]models.Member, error) {
	return s.memberRepo.GetAll(ctx)
}

// GetMemberByID retrieves a member by ID
func (s *memberService) GetMemberByID(ctx context.Context, id int) (*models.Member, error) {
	if id <= 0 {
		return nil, fmt.Errorf("member %d: %w", id, repositories.ErrNotFound)
	}
	return s.memberRepo.GetByID(ctx, id)
}

// FindMembers retrieves members matching exact column filters
func (s *memberService) FindMembers(ctx context.Context, filters map[string]string) ([]models.Member, error) {
	return s.memberRepo.Find(ctx, filters)
}

// CreateMember creates a new member with validation
func (s *memberService) CreateMember(ctx context.Context, form *models.MemberForm) (*models.Member, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errors, ", "))
	}

	member := &models.Member{
		Firstname: strings.TrimSpace(form.Firstname),
		Lastname:  strings.TrimSpace(form.Lastname),
		Email:     strings.TrimSpace(strings.ToLower(form.Email)),
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// UpdateMember updates an existing member
func (s *memberService) UpdateMember(ctx context.Context, id int, form *models.MemberForm) (*models.Member, error) {
	if errors := form.Validate(); len(errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(errors, ", "))
	}

	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Firstname = strings.TrimSpace(form.Firstname)
	member.Lastname = strings.TrimSpace(form.Lastname)
	member.Email = strings.TrimSpace(strings.ToLower(form.Email))

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// DeleteMember deletes a member; memberships go with it via cascade
func (s *memberService) DeleteMember(ctx context.Context, id int) (*models.Member, error) {
	if id <= 0 {
		return nil, fmt.Errorf("member %d: %w", id, repositories.ErrNotFound)
	}
	return s.memberRepo.Delete(ctx, id)
}

// GetMemberTeams retrieves the member's team memberships
func (s *memberService) GetMemberTeams(ctx context.Context, id int) ([]models.TeamMembership, error) {
	return s.membershipRepo.GetByMember(ctx, id)
}

// GetMemberCount returns the total number of members
func (s *memberService) GetMemberCount(ctx context.Context) (int, error) {
	return s.memberRepo.Count(ctx)
}
