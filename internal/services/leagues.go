package services

import (
	"errors"
	"strings"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateLeagueParams struct {
	Name           string
	ScoringRules   string
	Settings       datatypes.JSON
	DiscordWebhook string
	SlackWebhook   string
}

// CreateLeague creates a league with a fresh unique join code and enrolls the
// owner as its first member.
func CreateLeague(dbc *gorm.DB, ownerID string, params CreateLeagueParams) (*models.League, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, &types.ValidationError{Message: "League name is required"}
	}

	league := models.League{
		ID:             uuid.NewString(),
		Name:           name,
		OwnerID:        ownerID,
		ScoringRules:   params.ScoringRules,
		Settings:       params.Settings,
		DiscordWebhook: params.DiscordWebhook,
		SlackWebhook:   params.SlackWebhook,
		CreatedAt:      time.Now(),
	}

	err := dbc.Transaction(func(tx *gorm.DB) error {
		code, err := generateLeagueCode(tx)
		if err != nil {
			return err
		}
		league.Code = code

		if err := tx.Create(&league).Error; err != nil {
			return &types.PersistenceError{Message: "Failed to create league", Err: err}
		}

		membership := models.Membership{
			ID:       uuid.NewString(),
			UserID:   ownerID,
			LeagueID: league.ID,
			Role:     models.RoleOwner,
			JoinedAt: time.Now(),
		}

		if err := tx.Create(&membership).Error; err != nil {
			return &types.PersistenceError{Message: "Failed to enroll league owner", Err: err}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &league, nil
}

// JoinLeague enrolls the user in the league identified by code. The code is
// the sole join mechanism; a second join attempt for the same league is
// refused.
func JoinLeague(dbc *gorm.DB, userID, code string) (*models.League, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, &types.ValidationError{Message: "League code is required"}
	}

	var league models.League
	if err := dbc.First(&league, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Message: "League not found for that code"}
		}
		return nil, &types.PersistenceError{Message: "Failed to look up league", Err: err}
	}

	var existing models.Membership
	err := dbc.Where("user_id = ? AND league_id = ?", userID, league.ID).First(&existing).Error
	if err == nil {
		return nil, &types.ConflictError{Message: "Already a member of this league"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &types.PersistenceError{Message: "Failed to check membership", Err: err}
	}

	membership := models.Membership{
		ID:       uuid.NewString(),
		UserID:   userID,
		LeagueID: league.ID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}

	if err := dbc.Create(&membership).Error; err != nil {
		return nil, &types.PersistenceError{Message: "Failed to join league", Err: err}
	}

	return &league, nil
}

// LeaveLeague removes a user's membership. Memberships are never updated in
// place; leaving is the only way a membership disappears short of deleting the
// league itself.
func LeaveLeague(dbc *gorm.DB, userID, leagueID string) error {
	result := dbc.Where("user_id = ? AND league_id = ?", userID, leagueID).Delete(&models.Membership{})
	if result.Error != nil {
		return &types.PersistenceError{Message: "Failed to leave league", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return &types.NotFoundError{Message: "Membership not found"}
	}
	return nil
}

// DeleteLeague removes an empty league. Deletion is refused while any
// membership or pick still references the league, including the owner's own
// membership.
func DeleteLeague(dbc *gorm.DB, ownerID, leagueID string) error {
	var league models.League
	if err := dbc.Where("id = ? AND owner_id = ?", leagueID, ownerID).First(&league).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Message: "League not found"}
		}
		return &types.PersistenceError{Message: "Failed to look up league", Err: err}
	}

	var memberships int64
	if err := dbc.Model(&models.Membership{}).Where("league_id = ?", leagueID).Count(&memberships).Error; err != nil {
		return &types.PersistenceError{Message: "Failed to count memberships", Err: err}
	}
	if memberships > 0 {
		return &types.ConflictError{Message: "League still has members"}
	}

	var picks int64
	if err := dbc.Model(&models.Pick{}).Where("league_id = ?", leagueID).Count(&picks).Error; err != nil {
		return &types.PersistenceError{Message: "Failed to count picks", Err: err}
	}
	if picks > 0 {
		return &types.ConflictError{Message: "League still has picks"}
	}

	if err := dbc.Delete(&league).Error; err != nil {
		return &types.PersistenceError{Message: "Failed to delete league", Err: err}
	}

	return nil
}

// generateLeagueCode derives a short uppercase join code and retries on the
// rare collision with an existing league.
func generateLeagueCode(dbc *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

		var count int64
		if err := dbc.Model(&models.League{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return "", &types.PersistenceError{Message: "Failed to check league code", Err: err}
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", &types.ConflictError{Message: "Could not allocate a unique league code"}
}
