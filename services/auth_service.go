package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

// ErrInvalidCredentials is returned when email or password do not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// resetTokenTTL is how long a password-reset link stays usable
const resetTokenTTL = 24 * time.Hour

// AuthService verifies login credentials and runs the password-reset flow
type AuthService interface {
	VerifyCredentials(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	// RequestPasswordReset stores a single-use token and returns it, or
	// repositories.ErrNotFound when no user matches the email.
	RequestPasswordReset(ctx context.Context, email string) (*models.User, string, error)
	// ResetPassword sets a new password for the user holding an unexpired token
	ResetPassword(ctx context.Context, token, password string) error
	// EnsureUser creates a login user if the email is not yet taken
	EnsureUser(ctx context.Context, firstname, lastname, email, password, role string) error
}

// authService implements AuthService interface
type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// VerifyCredentials checks email and password against the users table
func (s *authService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Same failure for unknown email and wrong password
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID retrieves a login user by ID
func (s *authService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid user ID: %d", id)
	}
	return s.userRepo.GetByID(ctx, id)
}

// RequestPasswordReset issues a single-use reset token for the user
func (s *authService) RequestPasswordReset(ctx context.Context, email string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, "", err
	}

	token := uuid.NewString()
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return nil, "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return user, token, nil
}

// ResetPassword sets a new password for the holder of an unexpired reset token
func (s *authService) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("reset token not valid: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.userRepo.ClearResetToken(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}

	return nil
}

// EnsureUser creates a login user unless the email is already taken
func (s *authService) EnsureUser(ctx context.Context, firstname, lastname, email, password, role string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Firstname: firstname,
		Lastname:  lastname,
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
