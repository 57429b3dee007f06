package services

import (
	"errors"
	"strings"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"gorm.io/gorm"
)

const (
	unknownFighterName   = "Unknown Fighter"
	unknownFighterRecord = "0-0-0"
	defaultWeightClass   = "Catchweight"

	resultPending       = "Pending"
	resultDrawNoContest = "Draw/No Contest"
)

type FightView struct {
	FightID        string `json:"FightID"`
	FighterAID     string `json:"FighterA_ID"`
	FighterBID     string `json:"FighterB_ID"`
	FighterAName   string `json:"FighterAName"`
	FighterARecord string `json:"FighterARecord"`
	FighterBName   string `json:"FighterBName"`
	FighterBRecord string `json:"FighterBRecord"`
	WeightClass    string `json:"WeightClass"`
	Result         string `json:"Result"`
	Method         string `json:"Method"`
	Round          int    `json:"Round"`
}

// GetFightsForEvent assembles the denormalized fight card for an event. Fights
// and fighters are each loaded in one query; missing fighter rows get sentinel
// names rather than failing the whole card. An event with no fights yields an
// empty card, not an error.
func GetFightsForEvent(dbc *gorm.DB, eventID string) ([]FightView, error) {
	var event models.Event
	if err := dbc.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Message: "Event not found"}
		}
		return nil, &types.PersistenceError{Message: "Failed to look up event", Err: err}
	}

	var fights []models.Fight
	if err := dbc.Where("event_id = ?", eventID).Find(&fights).Error; err != nil {
		return nil, &types.PersistenceError{Message: "Failed to load fights", Err: err}
	}

	fighters, err := loadFighters(dbc, cornerIDs(fights))
	if err != nil {
		return nil, err
	}

	views := []FightView{}

	for _, fight := range fights {
		nameA, recordA := fighterLabel(fighters, fight.FighterAID)
		nameB, recordB := fighterLabel(fighters, fight.FighterBID)

		view := FightView{
			FightID:        fight.ID,
			FighterAID:     fight.FighterAID,
			FighterBID:     fight.FighterBID,
			FighterAName:   nameA,
			FighterARecord: recordA,
			FighterBName:   nameB,
			FighterBRecord: recordB,
			WeightClass:    fight.WeightClass,
			Method:         fight.Method,
			Round:          fight.Round,
		}

		if view.WeightClass == "" {
			view.WeightClass = defaultWeightClass
		}

		switch {
		case fight.WinnerID == "" && !isNonDecision(fight.Method):
			view.Result = resultPending
		case fight.WinnerID == fight.FighterAID:
			view.Result = nameA + " Win"
		case fight.WinnerID == fight.FighterBID:
			view.Result = nameB + " Win"
		default:
			// Covers draws and no contests, and guards against a recorded
			// winner that matches neither corner.
			view.Result = resultDrawNoContest
		}

		views = append(views, view)
	}

	return views, nil
}

func cornerIDs(fights []models.Fight) []string {
	seen := make(map[string]bool, len(fights)*2)
	ids := make([]string, 0, len(fights)*2)
	for _, fight := range fights {
		for _, id := range []string{fight.FighterAID, fight.FighterBID} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func loadFighters(dbc *gorm.DB, ids []string) (map[string]models.Fighter, error) {
	byID := make(map[string]models.Fighter, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var fighters []models.Fighter
	if err := dbc.Where("id IN ?", ids).Find(&fighters).Error; err != nil {
		return nil, &types.PersistenceError{Message: "Failed to load fighters", Err: err}
	}

	for _, fighter := range fighters {
		byID[fighter.ID] = fighter
	}
	return byID, nil
}

func fighterLabel(fighters map[string]models.Fighter, id string) (name, record string) {
	fighter, ok := fighters[id]
	if !ok {
		return unknownFighterName, unknownFighterRecord
	}
	return fighter.Name, fighter.Record()
}

// isNonDecision reports whether the method marks an outcome with no winner,
// such as a draw or a no contest.
func isNonDecision(method string) bool {
	m := strings.ToLower(method)
	return strings.Contains(m, "draw") || strings.Contains(m, "no contest")
}
