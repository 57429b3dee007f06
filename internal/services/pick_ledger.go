package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PickSelection struct {
	FightID   string `json:"fightId"`
	FighterID string `json:"fighterId"`
}

type SubmitPicksResult struct {
	Saved  int
	Failed int
}

// SubmitPicks replaces the user's picks for an event within a league. The
// delete of the prior set and the insert of the new one run in a single
// transaction, so a resubmission is atomic per (user, league, event) and
// concurrent submissions cannot interleave their delete/insert phases.
//
// Each selection is validated independently: the fight must belong to the
// event and the chosen fighter must be one of its corners. Invalid selections
// are counted and skipped without aborting their siblings, and when a batch
// names the same fight twice the later selection wins, so at most one pick per
// fight is ever written. Only a batch where every selection fails aborts the
// call (and leaves the prior set untouched).
func SubmitPicks(dbc *gorm.DB, userID, leagueID, eventID string, selections []PickSelection) (SubmitPicksResult, error) {
	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	eventID = strings.TrimSpace(eventID)

	if userID == "" || leagueID == "" || eventID == "" {
		return SubmitPicksResult{}, &types.ValidationError{Message: "userId, leagueId and eventId are required"}
	}

	// Rejecting an empty list up front guards against wiping a user's picks
	// with an accidental empty submission.
	if len(selections) == 0 {
		return SubmitPicksResult{}, types.ErrNoPicksProvided
	}

	var league models.League
	if err := dbc.First(&league, "id = ?", leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmitPicksResult{}, &types.NotFoundError{Message: "League not found"}
		}
		return SubmitPicksResult{}, &types.PersistenceError{Message: "Failed to look up league", Err: err}
	}

	var event models.Event
	if err := dbc.First(&event, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmitPicksResult{}, &types.NotFoundError{Message: "Event not found"}
		}
		return SubmitPicksResult{}, &types.PersistenceError{Message: "Failed to look up event", Err: err}
	}

	var fights []models.Fight
	if err := dbc.Where("event_id = ?", eventID).Find(&fights).Error; err != nil {
		return SubmitPicksResult{}, &types.PersistenceError{Message: "Failed to load event fights", Err: err}
	}

	fightsByID := make(map[string]models.Fight, len(fights))
	for _, fight := range fights {
		fightsByID[fight.ID] = fight
	}

	var result SubmitPicksResult

	// Validate before touching the database so a bad batch never clears the
	// prior set. Duplicate fight ids collapse to the last valid selection.
	chosenFighter := make(map[string]string)
	fightOrder := []string{}

	for _, selection := range selections {
		fightID := strings.TrimSpace(selection.FightID)
		fighterID := strings.TrimSpace(selection.FighterID)

		fight, ok := fightsByID[fightID]
		if fightID == "" || fighterID == "" || !ok {
			log.Printf("Skipping pick for user %s: fight %q not part of event %s", userID, selection.FightID, eventID)
			result.Failed++
			continue
		}

		if fighterID != fight.FighterAID && fighterID != fight.FighterBID {
			log.Printf("Skipping pick for user %s: fighter %q not in fight %s", userID, fighterID, fightID)
			result.Failed++
			continue
		}

		if _, seen := chosenFighter[fightID]; !seen {
			fightOrder = append(fightOrder, fightID)
		}
		chosenFighter[fightID] = fighterID
	}

	if len(chosenFighter) == 0 {
		return SubmitPicksResult{}, types.ErrAllPicksFailed
	}

	err := dbc.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND league_id = ? AND event_id = ?", userID, leagueID, eventID).
			Delete(&models.Pick{}).Error; err != nil {
			return &types.PersistenceError{Message: "Failed to clear previous picks", Err: err}
		}

		for _, fightID := range fightOrder {
			pick := models.Pick{
				ID:           uuid.NewString(),
				UserID:       userID,
				LeagueID:     leagueID,
				EventID:      eventID,
				FightID:      fightID,
				FighterID:    chosenFighter[fightID],
				PointsEarned: 0,
				CreatedAt:    time.Now(),
			}

			if err := tx.Create(&pick).Error; err != nil {
				return &types.PersistenceError{Message: "Failed to save picks", Err: err}
			}
			result.Saved++
		}

		return nil
	})

	if err != nil {
		return SubmitPicksResult{}, err
	}

	return result, nil
}
