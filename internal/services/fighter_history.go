package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"gorm.io/gorm"
)

type HistoryRow struct {
	EventName string    `json:"eventName"`
	EventDate time.Time `json:"eventDate"`
	Location  string    `json:"location"`
	Opponent  string    `json:"opponent"`
	Result    string    `json:"result"`
	Method    string    `json:"method"`
	Round     int       `json:"round"`
}

type MatchedFighter struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Record string `json:"record"`
}

type FighterHistory struct {
	Rows     []HistoryRow
	Fighters []MatchedFighter
	Message  string
}

// GetFighterHistory finds every fighter whose name contains the query
// (case-insensitive) and pools their fights into one result set, newest event
// first. A fight's outcome is derived relative to the matched fighter: which
// corner they occupied is specific to the fight, so the winner id is compared
// against the fighter's own id, never against a fixed corner.
//
// An unmatched query is not an error; the message distinguishes "no fighter
// found" from "fighter found but no fights recorded".
func GetFighterHistory(dbc *gorm.DB, nameQuery string) (FighterHistory, error) {
	query := strings.TrimSpace(nameQuery)
	if query == "" {
		return FighterHistory{}, &types.ValidationError{Message: "Fighter name is required"}
	}

	var matched []models.Fighter
	err := dbc.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").Find(&matched).Error
	if err != nil {
		return FighterHistory{}, &types.PersistenceError{Message: "Failed to search fighters", Err: err}
	}

	history := FighterHistory{Rows: []HistoryRow{}, Fighters: []MatchedFighter{}}

	if len(matched) == 0 {
		history.Message = fmt.Sprintf("No fighter found matching %q", query)
		return history, nil
	}

	matchedIDs := make([]string, 0, len(matched))
	matchedByID := make(map[string]models.Fighter, len(matched))
	for _, fighter := range matched {
		matchedIDs = append(matchedIDs, fighter.ID)
		matchedByID[fighter.ID] = fighter
		history.Fighters = append(history.Fighters, MatchedFighter{
			ID:     fighter.ID,
			Name:   fighter.Name,
			Record: fighter.Record(),
		})
	}

	var fights []models.Fight
	err = dbc.Where("fighter_a_id IN ? OR fighter_b_id IN ?", matchedIDs, matchedIDs).Find(&fights).Error
	if err != nil {
		return FighterHistory{}, &types.PersistenceError{Message: "Failed to load fights", Err: err}
	}

	if len(fights) == 0 {
		history.Message = fmt.Sprintf("No fights recorded for fighters matching %q", query)
		return history, nil
	}

	fighters, err := loadFighters(dbc, cornerIDs(fights))
	if err != nil {
		return FighterHistory{}, err
	}

	events, err := loadEvents(dbc, fights)
	if err != nil {
		return FighterHistory{}, err
	}

	for _, fight := range fights {
		// Both corners can match a broad query; emit one row per matched
		// perspective.
		for _, cornerID := range []string{fight.FighterAID, fight.FighterBID} {
			subject, ok := matchedByID[cornerID]
			if !ok {
				continue
			}

			opponentID := fight.FighterBID
			if cornerID == fight.FighterBID {
				opponentID = fight.FighterAID
			}
			opponentName, _ := fighterLabel(fighters, opponentID)

			event := events[fight.EventID]

			history.Rows = append(history.Rows, HistoryRow{
				EventName: event.Name,
				EventDate: event.Date,
				Location:  event.Location,
				Opponent:  opponentName,
				Result:    relativeResult(fight, subject.ID),
				Method:    fight.Method,
				Round:     fight.Round,
			})
		}
	}

	sort.SliceStable(history.Rows, func(i, j int) bool {
		return history.Rows[i].EventDate.After(history.Rows[j].EventDate)
	})

	return history, nil
}

// relativeResult derives the fight outcome from the perspective of fighterID.
func relativeResult(fight models.Fight, fighterID string) string {
	switch {
	case fight.WinnerID == fighterID:
		return "Win"
	case fight.WinnerID != "":
		return "Loss"
	case isNonDecision(fight.Method):
		// No winner recorded and the method itself names the outcome.
		return fight.Method
	default:
		return resultPending
	}
}

func loadEvents(dbc *gorm.DB, fights []models.Fight) (map[string]models.Event, error) {
	seen := make(map[string]bool, len(fights))
	ids := make([]string, 0, len(fights))
	for _, fight := range fights {
		if fight.EventID != "" && !seen[fight.EventID] {
			seen[fight.EventID] = true
			ids = append(ids, fight.EventID)
		}
	}

	byID := make(map[string]models.Event, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var events []models.Event
	if err := dbc.Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, &types.PersistenceError{Message: "Failed to load events", Err: err}
	}

	for _, event := range events {
		byID[event.ID] = event
	}
	return byID, nil
}
