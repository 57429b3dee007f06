package services

import (
	"testing"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbc, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := dbc.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = dbc.AutoMigrate(
		&models.User{},
		&models.League{},
		&models.Membership{},
		&models.Event{},
		&models.Fighter{},
		&models.Fight{},
		&models.Pick{},
	)
	require.NoError(t, err)

	return dbc
}

func seedUser(t *testing.T, dbc *gorm.DB, id, username string) models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, dbc.Create(&user).Error)
	return user
}

func seedLeague(t *testing.T, dbc *gorm.DB, id, ownerID, code string) models.League {
	t.Helper()
	league := models.League{
		ID:        id,
		Name:      "Test League " + id,
		OwnerID:   ownerID,
		Code:      code,
		CreatedAt: time.Now(),
	}
	require.NoError(t, dbc.Create(&league).Error)
	return league
}

func seedMembership(t *testing.T, dbc *gorm.DB, userID, leagueID, role string) {
	t.Helper()
	membership := models.Membership{
		ID:       userID + ":" + leagueID,
		UserID:   userID,
		LeagueID: leagueID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	require.NoError(t, dbc.Create(&membership).Error)
}

func seedEvent(t *testing.T, dbc *gorm.DB, id, name string, date time.Time) models.Event {
	t.Helper()
	event := models.Event{
		ID:       id,
		Name:     name,
		Date:     date,
		Location: "Las Vegas, NV",
	}
	require.NoError(t, dbc.Create(&event).Error)
	return event
}

func seedFighter(t *testing.T, dbc *gorm.DB, id, name string, wins, losses, draws int) models.Fighter {
	t.Helper()
	fighter := models.Fighter{
		ID:     id,
		Name:   name,
		Wins:   wins,
		Losses: losses,
		Draws:  draws,
	}
	require.NoError(t, dbc.Create(&fighter).Error)
	return fighter
}

func seedFight(t *testing.T, dbc *gorm.DB, fight models.Fight) models.Fight {
	t.Helper()
	require.NoError(t, dbc.Create(&fight).Error)
	return fight
}
