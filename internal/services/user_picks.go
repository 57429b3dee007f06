package services

import (
	"strings"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"gorm.io/gorm"
)

type UserPickView struct {
	PickID       string `json:"PickID"`
	EventID      string `json:"EventID"`
	EventName    string `json:"EventName"`
	FightID      string `json:"FightID"`
	FighterID    string `json:"FighterID"`
	FighterName  string `json:"FighterName"`
	PointsEarned int    `json:"PointsEarned"`
}

// GetUserPicks returns the user's active picks in a league with event and
// fighter names resolved.
func GetUserPicks(dbc *gorm.DB, userID, leagueID string) ([]UserPickView, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)

	if userID == "" || leagueID == "" {
		return nil, &types.ValidationError{Message: "userId and leagueId are required"}
	}

	var picks []models.Pick
	err := dbc.Where("user_id = ? AND league_id = ?", userID, leagueID).
		Order("created_at ASC").
		Find(&picks).Error
	if err != nil {
		return nil, &types.PersistenceError{Message: "Failed to load picks", Err: err}
	}

	eventIDs := make([]string, 0, len(picks))
	fighterIDs := make([]string, 0, len(picks))
	seenEvents := make(map[string]bool)
	seenFighters := make(map[string]bool)
	for _, pick := range picks {
		if !seenEvents[pick.EventID] {
			seenEvents[pick.EventID] = true
			eventIDs = append(eventIDs, pick.EventID)
		}
		if !seenFighters[pick.FighterID] {
			seenFighters[pick.FighterID] = true
			fighterIDs = append(fighterIDs, pick.FighterID)
		}
	}

	events := map[string]models.Event{}
	if len(eventIDs) > 0 {
		var rows []models.Event
		if err := dbc.Where("id IN ?", eventIDs).Find(&rows).Error; err != nil {
			return nil, &types.PersistenceError{Message: "Failed to load events", Err: err}
		}
		for _, event := range rows {
			events[event.ID] = event
		}
	}

	fighters, err := loadFighters(dbc, fighterIDs)
	if err != nil {
		return nil, err
	}

	views := []UserPickView{}
	for _, pick := range picks {
		fighterName, _ := fighterLabel(fighters, pick.FighterID)
		views = append(views, UserPickView{
			PickID:       pick.ID,
			EventID:      pick.EventID,
			EventName:    events[pick.EventID].Name,
			FightID:      pick.FightID,
			FighterID:    pick.FighterID,
			FighterName:  fighterName,
			PointsEarned: pick.PointsEarned,
		})
	}

	return views, nil
}
