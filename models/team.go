package models

import (
	"time"
)

// Team represents a row in the teams table
type Team struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// TeamForm represents form data for creating/updating teams
type TeamForm struct {
	Name string `json:"name"`
}

// Validate validates the team form data
func (f *TeamForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	return errors
}

// TeamMembership represents a row in the team_members join table
type TeamMembership struct {
	ID       int       `json:"id" db:"id"`
	MemberID int       `json:"member_id" db:"member_id"`
	TeamID   int       `json:"team_id" db:"team_id"`
	JoinedOn time.Time `json:"joined_on" db:"joined_on"`

	// Denormalised for display; populated by list queries
	MemberName string `json:"member_name,omitempty" db:"-"`
	TeamName   string `json:"team_name,omitempty" db:"-"`
}

// TeamMembershipForm represents form data for adding a member to a team
type TeamMembershipForm struct {
	MemberID int `json:"member_id"`
	TeamID   int `json:"team_id"`
}

// Validate validates the membership form data
func (f *TeamMembershipForm) Validate() []string {
	var errors []string

	if f.MemberID <= 0 {
		errors = append(errors, "Member is required")
	}

	if f.TeamID <= 0 {
		errors = append(errors, "Team is required")
	}

	return errors
}
