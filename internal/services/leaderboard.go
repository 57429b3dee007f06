package services

import (
	"errors"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"gorm.io/gorm"
)

type LeaderboardRow struct {
	UserID      string `json:"UserID" gorm:"column:user_id"`
	Username    string `json:"Username" gorm:"column:username"`
	TotalPoints int    `json:"TotalPoints" gorm:"column:total_points"`
}

// GetLeaderboard returns one row per league member, ordered by total points
// descending with ties broken by username. Members who have not submitted any
// picks appear with 0 points at the bottom of their tier; rank is positional.
func GetLeaderboard(dbc *gorm.DB, leagueID string) ([]LeaderboardRow, error) {
	var league models.League
	if err := dbc.First(&league, "id = ?", leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Message: "League not found"}
		}
		return nil, &types.PersistenceError{Message: "Failed to look up league", Err: err}
	}

	rows := []LeaderboardRow{}

	err := dbc.Raw(`
		SELECT u.id AS user_id,
		       u.username AS username,
		       COALESCE(SUM(p.points_earned), 0) AS total_points
		FROM memberships m
		JOIN users u ON u.id = m.user_id
		LEFT JOIN picks p ON p.user_id = m.user_id AND p.league_id = m.league_id
		WHERE m.league_id = ?
		GROUP BY u.id, u.username
		ORDER BY total_points DESC, u.username ASC`, leagueID).
		Scan(&rows).Error

	if err != nil {
		return nil, &types.PersistenceError{Message: "Failed to compute leaderboard", Err: err}
	}

	return rows, nil
}
