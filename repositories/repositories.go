package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Member     MemberRepository
	Team       TeamRepository
	Membership MembershipRepository
	User       UserRepository
	Log        LogRepository
}

// NewRepositories creates and initializes all repositories. logCap is the
// maximum number of rows kept per log table.
func NewRepositories(db *sql.DB, logCap int) *Repositories {
	return &Repositories{
		Member:     NewMemberRepository(db),
		Team:       NewTeamRepository(db),
		Membership: NewMembershipRepository(db),
		User:       NewUserRepository(db),
		Log:        NewLogRepository(db, logCap),
	}
}
