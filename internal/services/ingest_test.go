package services

import (
	"errors"
	"testing"

	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestEventToleratesFieldNameDrift(t *testing.T) {
	dbc := newTestDB(t)

	// Field names as one of the older feeds sends them.
	payload := map[string]interface{}{
		"eventId":    "evt-100",
		"event_name": "Showdown 42",
		"date":       "2025-03-08",
		"venue":      "Las Vegas, NV",
		"fighters": []interface{}{
			map[string]interface{}{"fighter_id": "ftr-1", "full_name": "Jon Jones", "wins": float64(27), "losses": float64(1)},
			map[string]interface{}{"id": "ftr-2", "name": "Stipe Miocic", "division": "Heavyweight", "win_count": float64(20), "loss_count": float64(4)},
		},
		"fights": []interface{}{
			map[string]interface{}{
				"fight_id": "fgt-1",
				"red_id":   "ftr-1",
				"blue_id":  "ftr-2",
				"winner":   "ftr-1",
				"method":   "KO/TKO",
				"round":    float64(2),
			},
		},
	}

	event, result, err := IngestEvent(dbc, payload)
	require.NoError(t, err)
	assert.Equal(t, "evt-100", event.ID)
	assert.Equal(t, "Showdown 42", event.Name)
	assert.Equal(t, "Las Vegas, NV", event.Location)
	assert.Equal(t, 2, result.Fighters)
	assert.Equal(t, 1, result.Fights)

	var fight models.Fight
	require.NoError(t, dbc.First(&fight, "id = ?", "fgt-1").Error)
	assert.Equal(t, "ftr-1", fight.FighterAID)
	assert.Equal(t, "ftr-2", fight.FighterBID)
	assert.Equal(t, "ftr-1", fight.WinnerID)
	assert.Equal(t, 2, fight.Round)

	var fighter models.Fighter
	require.NoError(t, dbc.First(&fighter, "id = ?", "ftr-1").Error)
	assert.Equal(t, "Jon Jones", fighter.Name)
	assert.Equal(t, "27-1-0", fighter.Record())
}

func TestIngestEventUpsertsExistingRows(t *testing.T) {
	dbc := newTestDB(t)

	payload := map[string]interface{}{
		"id":   "evt-100",
		"name": "Showdown 42",
		"fights": []interface{}{
			map[string]interface{}{"id": "fgt-1", "fighter_a_id": "ftr-1", "fighter_b_id": "ftr-2"},
		},
	}
	_, _, err := IngestEvent(dbc, payload)
	require.NoError(t, err)

	// Second feed run carries the finished result.
	payload["fights"] = []interface{}{
		map[string]interface{}{"id": "fgt-1", "fighter_a_id": "ftr-1", "fighter_b_id": "ftr-2", "winner_id": "ftr-2", "method": "Decision", "round": float64(3)},
	}
	_, _, err = IngestEvent(dbc, payload)
	require.NoError(t, err)

	var count int64
	require.NoError(t, dbc.Model(&models.Fight{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var fight models.Fight
	require.NoError(t, dbc.First(&fight, "id = ?", "fgt-1").Error)
	assert.Equal(t, "ftr-2", fight.WinnerID)
	assert.Equal(t, "Decision", fight.Method)
}

func TestIngestEventRequiresIDAndName(t *testing.T) {
	dbc := newTestDB(t)

	var validation *types.ValidationError
	_, _, err := IngestEvent(dbc, map[string]interface{}{"name": "No ID"})
	require.True(t, errors.As(err, &validation))
}

func TestIngestEventSkipsIncompleteRows(t *testing.T) {
	dbc := newTestDB(t)

	payload := map[string]interface{}{
		"id":   "evt-100",
		"name": "Showdown 42",
		"fighters": []interface{}{
			map[string]interface{}{"id": "ftr-1"}, // no name
			map[string]interface{}{"id": "ftr-2", "name": "Stipe Miocic"},
		},
		"fights": []interface{}{
			map[string]interface{}{"id": "fgt-1", "fighter_a_id": "ftr-1"}, // missing corner
		},
	}

	_, result, err := IngestEvent(dbc, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Fighters)
	assert.Equal(t, 0, result.Fights)
}
