package services

import (
	"errors"
	"testing"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeagueEnrollsOwner(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")

	league, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club", ScoringRules: "10 per correct pick"})
	require.NoError(t, err)
	assert.NotEmpty(t, league.ID)
	assert.Len(t, league.Code, 8)

	var membership models.Membership
	require.NoError(t, dbc.Where("user_id = ? AND league_id = ?", owner.ID, league.ID).First(&membership).Error)
	assert.Equal(t, models.RoleOwner, membership.Role)
}

func TestCreateLeagueRequiresName(t *testing.T) {
	dbc := newTestDB(t)
	seedUser(t, dbc, "user-1", "alice")

	var validation *types.ValidationError
	_, err := CreateLeague(dbc, "user-1", CreateLeagueParams{Name: "  "})
	require.True(t, errors.As(err, &validation))
}

func TestJoinLeagueByCode(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")
	bob := seedUser(t, dbc, "user-2", "bob")

	created, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club"})
	require.NoError(t, err)

	joined, err := JoinLeague(dbc, bob.ID, created.Code)
	require.NoError(t, err)
	assert.Equal(t, created.ID, joined.ID)

	var membership models.Membership
	require.NoError(t, dbc.Where("user_id = ? AND league_id = ?", bob.ID, created.ID).First(&membership).Error)
	assert.Equal(t, models.RoleMember, membership.Role)
}

func TestJoinLeagueDuplicateRefused(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")
	bob := seedUser(t, dbc, "user-2", "bob")

	created, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club"})
	require.NoError(t, err)

	_, err = JoinLeague(dbc, bob.ID, created.Code)
	require.NoError(t, err)

	var conflict *types.ConflictError
	_, err = JoinLeague(dbc, bob.ID, created.Code)
	require.True(t, errors.As(err, &conflict))
}

func TestJoinLeagueUnknownCode(t *testing.T) {
	dbc := newTestDB(t)
	seedUser(t, dbc, "user-1", "alice")

	var notFound *types.NotFoundError
	_, err := JoinLeague(dbc, "user-1", "NOPE0000")
	require.True(t, errors.As(err, &notFound))
}

func TestDeleteLeagueRefusedWithDependents(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")

	league, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club"})
	require.NoError(t, err)

	// The owner's own auto-enrollment counts as a dependent membership.
	var conflict *types.ConflictError
	err = DeleteLeague(dbc, owner.ID, league.ID)
	require.True(t, errors.As(err, &conflict))

	// Memberships gone, but a pick still references the league.
	require.NoError(t, LeaveLeague(dbc, owner.ID, league.ID))

	seedEvent(t, dbc, "event-1", "Showdown 42", time.Now())
	seedFighter(t, dbc, "fighter-a", "Jon Jones", 27, 1, 0)
	seedFighter(t, dbc, "fighter-b", "Stipe Miocic", 20, 4, 0)
	seedFight(t, dbc, models.Fight{ID: "fight-1", EventID: "event-1", FighterAID: "fighter-a", FighterBID: "fighter-b"})
	require.NoError(t, dbc.Create(&models.Pick{
		ID: "pick-1", UserID: owner.ID, LeagueID: league.ID,
		EventID: "event-1", FightID: "fight-1", FighterID: "fighter-a",
	}).Error)

	err = DeleteLeague(dbc, owner.ID, league.ID)
	require.True(t, errors.As(err, &conflict))

	// With every dependent removed the delete goes through.
	require.NoError(t, dbc.Delete(&models.Pick{ID: "pick-1"}).Error)
	require.NoError(t, DeleteLeague(dbc, owner.ID, league.ID))

	var count int64
	require.NoError(t, dbc.Model(&models.League{}).Where("id = ?", league.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteLeagueOnlyOwner(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")
	bob := seedUser(t, dbc, "user-2", "bob")

	league, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club"})
	require.NoError(t, err)

	var notFound *types.NotFoundError
	err = DeleteLeague(dbc, bob.ID, league.ID)
	require.True(t, errors.As(err, &notFound))
}

func TestLeaveLeagueWithoutMembership(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")
	bob := seedUser(t, dbc, "user-2", "bob")

	league, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "Fight Club"})
	require.NoError(t, err)

	var notFound *types.NotFoundError
	err = LeaveLeague(dbc, bob.ID, league.ID)
	require.True(t, errors.As(err, &notFound))
}

func TestLeagueCodesAreUnique(t *testing.T) {
	dbc := newTestDB(t)
	owner := seedUser(t, dbc, "user-1", "alice")

	codes := map[string]bool{}
	for i := 0; i < 10; i++ {
		league, err := CreateLeague(dbc, owner.ID, CreateLeagueParams{Name: "League"})
		require.NoError(t, err)
		assert.False(t, codes[league.Code])
		codes[league.Code] = true
	}
}
