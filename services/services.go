package services

import (
	"time"

	"github.com/dandoon/sample-webapp/repositories"
)

// Services holds all service instances
type Services struct {
	Member     MemberService
	Team       TeamService
	Membership MembershipService
	Auth       AuthService
	Token      TokenService
	Log        LogService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, tokenSecret string, tokenTTL time.Duration) *Services {
	token := NewTokenService(tokenSecret, tokenTTL)

	return &Services{
		Member:     NewMemberService(repos.Member, repos.Membership),
		Team:       NewTeamService(repos.Team, repos.Membership),
		Membership: NewMembershipService(repos.Membership, repos.Member, repos.Team),
		Auth:       NewAuthService(repos.User),
		Token:      token,
		Log:        NewLogService(repos.Log),
	}
}
