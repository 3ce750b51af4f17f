package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandoon/sample-webapp/database"
	"github.com/dandoon/sample-webapp/models"
	"github.com/dandoon/sample-webapp/repositories"
)

func setupTestRepos(t *testing.T) *repositories.Repositories {
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	t.Cleanup(func() {
		os.Remove(dbPath)
	})

	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return repositories.NewRepositories(database.GetDB(), 100)
}

func TestMemberService(t *testing.T) {
	repos := setupTestRepos(t)
	svc := NewMemberService(repos.Member, repos.Membership)
	ctx := context.Background()

	// Valid form creates, normalising whitespace and email case
	member, err := svc.CreateMember(ctx, &models.MemberForm{
		Firstname: "  Fred ",
		Lastname:  "Bloggs",
		Email:     "Fred@Bloggs.COM",
	})
	require.NoError(t, err)
	assert.Equal(t, "Fred", member.Firstname)
	assert.Equal(t, "fred@bloggs.com", member.Email)

	// Invalid form reports a validation failure
	_, err = svc.CreateMember(ctx, &models.MemberForm{Email: "bad"})
	assert.ErrorIs(t, err, ErrValidation)

	// Duplicate email surfaces the repository error
	_, err = svc.CreateMember(ctx, &models.MemberForm{
		Firstname: "Other",
		Lastname:  "Person",
		Email:     "fred@bloggs.com",
	})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// Update
	updated, err := svc.UpdateMember(ctx, member.ID, &models.MemberForm{
		Firstname: "Frederick",
		Lastname:  "Bloggs",
		Email:     "fred@bloggs.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Frederick", updated.Firstname)

	// Delete returns the row; bad ids report not found
	deleted, err := svc.DeleteMember(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "fred@bloggs.com", deleted.Email)

	_, err = svc.DeleteMember(ctx, 0)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMembershipService(t *testing.T) {
	repos := setupTestRepos(t)
	members := NewMemberService(repos.Member, repos.Membership)
	teams := NewTeamService(repos.Team, repos.Membership)
	svc := NewMembershipService(repos.Membership, repos.Member, repos.Team)
	ctx := context.Background()

	member, err := members.CreateMember(ctx, &models.MemberForm{
		Firstname: "Jo", Lastname: "Smith", Email: "jo@example.com",
	})
	require.NoError(t, err)

	team, err := teams.CreateTeam(ctx, &models.TeamForm{Name: "Rockets"})
	require.NoError(t, err)

	// Adding checks both sides exist
	_, err = svc.AddMemberToTeam(ctx, &models.TeamMembershipForm{MemberID: 9999, TeamID: team.ID})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	membership, err := svc.AddMemberToTeam(ctx, &models.TeamMembershipForm{MemberID: member.ID, TeamID: team.ID})
	require.NoError(t, err)
	assert.Equal(t, "Jo Smith", membership.MemberName)
	assert.Equal(t, "Rockets", membership.TeamName)

	// Same pairing twice is a duplicate
	_, err = svc.AddMemberToTeam(ctx, &models.TeamMembershipForm{MemberID: member.ID, TeamID: team.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	removed, err := svc.RemoveMembership(ctx, membership.ID)
	require.NoError(t, err)
	assert.Equal(t, membership.ID, removed.ID)
}

func TestAuthServiceCredentials(t *testing.T) {
	repos := setupTestRepos(t)
	svc := NewAuthService(repos.User)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "Admin", "User", "admin@example.com", "secret-pw", models.RoleAdmin))

	// EnsureUser is idempotent
	require.NoError(t, svc.EnsureUser(ctx, "Admin", "User", "admin@example.com", "other-pw", models.RoleAdmin))

	user, err := svc.VerifyCredentials(ctx, "admin@example.com", "secret-pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// Email matching is case and whitespace insensitive
	_, err = svc.VerifyCredentials(ctx, "  Admin@Example.COM ", "secret-pw")
	assert.NoError(t, err)

	// Wrong password and unknown email fail the same way
	_, err = svc.VerifyCredentials(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(ctx, "nobody@example.com", "secret-pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServicePasswordReset(t *testing.T) {
	repos := setupTestRepos(t)
	svc := NewAuthService(repos.User)
	ctx := context.Background()

	require.NoError(t, svc.EnsureUser(ctx, "Admin", "User", "admin@example.com", "old-password", models.RoleAdmin))

	// Unknown email reports not found so the controller can stay quiet about it
	_, _, err := svc.RequestPasswordReset(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	user, token, err := svc.RequestPasswordReset(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@example.com", user.Email)

	require.NoError(t, svc.ResetPassword(ctx, token, "new-password"))

	// New password works, old one does not
	_, err = svc.VerifyCredentials(ctx, "admin@example.com", "new-password")
	assert.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "admin@example.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Token is single use
	err = svc.ResetPassword(ctx, token, "another-password")
	assert.Error(t, err)
}

func TestLogServiceViewer(t *testing.T) {
	repos := setupTestRepos(t)
	svc := NewLogService(repos.Log)
	ctx := context.Background()

	entries := []models.AccessLogEntry{
		{App: models.AppWWW, Method: "GET", URL: "/", Status: 200, UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"},
		{App: models.AppAdmin, Method: "GET", URL: "/", Status: 302},
		{App: models.AppAdmin, Method: "POST", URL: "/members", Status: 404},
	}
	for i := range entries {
		require.NoError(t, svc.Record(ctx, &entries[i]))
	}

	rows, err := svc.GetAccessLog(ctx, "", "", 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first; only 4xx/5xx rows are flagged, redirects are routine
	assert.Equal(t, "/members", rows[0].URL)
	assert.True(t, rows[0].IsError)
	assert.False(t, rows[1].IsError)
	assert.False(t, rows[2].IsError)
	assert.Contains(t, rows[2].Agent, "Chrome")

	// App facet narrows the result
	rows, err = svc.GetAccessLog(ctx, "", models.AppAdmin, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Error log path
	require.NoError(t, svc.RecordError(ctx, &models.ErrorLogEntry{
		App: models.AppAPI, Method: "GET", URL: "/members", Status: 500, Message: "boom",
	}))

	errRows, err := svc.GetErrorLog(ctx, "hour", "", 5)
	require.NoError(t, err)
	require.Len(t, errRows, 1)
	assert.Equal(t, "boom", errRows[0].Message)
}

func TestPeriodStart(t *testing.T) {
	assert.True(t, PeriodStart("").IsZero())
	assert.True(t, PeriodStart("all").IsZero())

	now := time.Now()
	assert.WithinDuration(t, now.Add(-time.Hour), PeriodStart("hour"), 5*time.Second)
	assert.WithinDuration(t, now.AddDate(0, 0, -1), PeriodStart("day"), 5*time.Second)
	assert.WithinDuration(t, now.AddDate(0, 0, -7), PeriodStart("week"), 5*time.Second)
	assert.WithinDuration(t, now.AddDate(0, -1, 0), PeriodStart("month"), 5*time.Second)
}

func TestFormatUserAgent(t *testing.T) {
	assert.Equal(t, "–", FormatUserAgent(""))

	got := FormatUserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Contains(t, got, "Chrome")
	assert.Contains(t, got, "macOS")

	// Unparseable strings pass through untouched
	assert.Equal(t, "weird-agent", FormatUserAgent("weird-agent"))
}

func TestValidationErrorWrapping(t *testing.T) {
	repos := setupTestRepos(t)
	teams := NewTeamService(repos.Team, repos.Membership)

	_, err := teams.CreateTeam(context.Background(), &models.TeamForm{Name: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "Name is required")
}
