package services

import (
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/cageside-dev/cageside/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngestResult struct {
	Fighters int
	Fights   int
}

// IngestEvent upserts an externally sourced event with its fighters and
// fights. Feeds have renamed their columns over the years, so every field is
// read through the alias resolver here, once; downstream code only ever sees
// the canonical models.
func IngestEvent(dbc *gorm.DB, payload map[string]interface{}) (*models.Event, IngestResult, error) {
	eventID := utils.FieldString(payload, "id", "event_id", "eventId")
	eventName := utils.FieldString(payload, "name", "event_name", "title")

	if eventID == "" || eventName == "" {
		return nil, IngestResult{}, &types.ValidationError{Message: "Event id and name are required"}
	}

	event := models.Event{
		ID:       eventID,
		Name:     eventName,
		Date:     parseEventDate(utils.FieldString(payload, "date", "event_date", "start_time")),
		Location: utils.FieldString(payload, "location", "venue"),
	}

	var result IngestResult

	err := dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&event).Error; err != nil {
			return &types.PersistenceError{Message: "Failed to save event", Err: err}
		}

		for _, raw := range rowsOf(payload, "fighters") {
			fighter := models.Fighter{
				ID:          utils.FieldString(raw, "id", "fighter_id", "fighterId"),
				Name:        utils.FieldString(raw, "name", "fighter_name", "full_name"),
				WeightClass: utils.FieldString(raw, "weight_class", "weightClass", "division"),
				Wins:        utils.FieldInt(raw, "wins", "win_count"),
				Losses:      utils.FieldInt(raw, "losses", "loss_count"),
				Draws:       utils.FieldInt(raw, "draws", "draw_count"),
			}
			if fighter.ID == "" || fighter.Name == "" {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&fighter).Error; err != nil {
				return &types.PersistenceError{Message: "Failed to save fighter", Err: err}
			}
			result.Fighters++
		}

		for _, raw := range rowsOf(payload, "fights") {
			fight := models.Fight{
				ID:          utils.FieldString(raw, "id", "fight_id", "fightId"),
				EventID:     event.ID,
				FighterAID:  utils.FieldString(raw, "fighter_a_id", "fighterA_id", "red_id", "red_corner"),
				FighterBID:  utils.FieldString(raw, "fighter_b_id", "fighterB_id", "blue_id", "blue_corner"),
				WinnerID:    utils.FieldString(raw, "winner_id", "winnerId", "winner"),
				Method:      utils.FieldString(raw, "method", "finish_method"),
				Round:       utils.FieldInt(raw, "round", "finish_round", "ending_round"),
				WeightClass: utils.FieldString(raw, "weight_class", "weightClass", "division"),
			}
			if fight.ID == "" || fight.FighterAID == "" || fight.FighterBID == "" {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&fight).Error; err != nil {
				return &types.PersistenceError{Message: "Failed to save fight", Err: err}
			}
			result.Fights++
		}

		return nil
	})

	if err != nil {
		return nil, IngestResult{}, err
	}

	return &event, result, nil
}

func rowsOf(payload map[string]interface{}, key string) []map[string]interface{} {
	raw, ok := payload[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if row, ok := item.(map[string]interface{}); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

func parseEventDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
