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

func TestGetFighterHistorySingleDecidedFight(t *testing.T) {
	dbc := newTestDB(t)

	seedEvent(t, dbc, "event-1", "Showdown 42", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	seedFighter(t, dbc, "fighter-a", "Stipe Miocic", 20, 4, 0)
	seedFighter(t, dbc, "fighter-b", "Jon Jones", 27, 1, 0)

	// The queried fighter sits in the second corner of this fight; the win
	// must still be attributed to him.
	seedFight(t, dbc, models.Fight{
		ID: "fight-1", EventID: "event-1",
		FighterAID: "fighter-a", FighterBID: "fighter-b",
		WinnerID: "fighter-b", Method: "Submission", Round: 3,
	})

	history, err := GetFighterHistory(dbc, "Jones")
	require.NoError(t, err)

	require.Len(t, history.Fighters, 1)
	assert.Equal(t, "Jon Jones", history.Fighters[0].Name)
	assert.Equal(t, "27-1-0", history.Fighters[0].Record)

	require.Len(t, history.Rows, 1)
	row := history.Rows[0]
	assert.Equal(t, "Showdown 42", row.EventName)
	assert.Equal(t, "Las Vegas, NV", row.Location)
	assert.Equal(t, "Stipe Miocic", row.Opponent)
	assert.Equal(t, "Win", row.Result)
	assert.Equal(t, "Submission", row.Method)
	assert.Equal(t, 3, row.Round)
	assert.Empty(t, history.Message)
}

func TestGetFighterHistoryOutcomesRelativeToFighter(t *testing.T) {
	dbc := newTestDB(t)

	seedEvent(t, dbc, "event-1", "Showdown 41", time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC))
	seedEvent(t, dbc, "event-2", "Showdown 42", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	seedEvent(t, dbc, "event-3", "Showdown 43", time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC))
	seedEvent(t, dbc, "event-4", "Showdown 44", time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC))

	seedFighter(t, dbc, "fighter-a", "Jan Blachowicz", 29, 10, 1)
	seedFighter(t, dbc, "fighter-b", "Magomed Ankalaev", 19, 1, 1)

	seedFight(t, dbc, models.Fight{ID: "fight-loss", EventID: "event-1", FighterAID: "fighter-a", FighterBID: "fighter-b", WinnerID: "fighter-b", Method: "Decision", Round: 5})
	seedFight(t, dbc, models.Fight{ID: "fight-win", EventID: "event-2", FighterAID: "fighter-a", FighterBID: "fighter-b", WinnerID: "fighter-a", Method: "KO/TKO", Round: 1})
	seedFight(t, dbc, models.Fight{ID: "fight-draw", EventID: "event-3", FighterAID: "fighter-b", FighterBID: "fighter-a", Method: "Draw", Round: 3})
	seedFight(t, dbc, models.Fight{ID: "fight-pending", EventID: "event-4", FighterAID: "fighter-b", FighterBID: "fighter-a"})

	history, err := GetFighterHistory(dbc, "blachowicz")
	require.NoError(t, err)
	require.Len(t, history.Rows, 4)

	// Newest event first.
	assert.Equal(t, "Showdown 44", history.Rows[0].EventName)
	assert.Equal(t, "Pending", history.Rows[0].Result)
	assert.Equal(t, "Showdown 43", history.Rows[1].EventName)
	assert.Equal(t, "Draw", history.Rows[1].Result)
	assert.Equal(t, "Showdown 42", history.Rows[2].EventName)
	assert.Equal(t, "Win", history.Rows[2].Result)
	assert.Equal(t, "Showdown 41", history.Rows[3].EventName)
	assert.Equal(t, "Loss", history.Rows[3].Result)

	for _, row := range history.Rows {
		assert.Equal(t, "Magomed Ankalaev", row.Opponent)
	}
}

func TestGetFighterHistoryMatchesMultipleFighters(t *testing.T) {
	dbc := newTestDB(t)

	seedEvent(t, dbc, "event-1", "Showdown 42", time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC))
	seedFighter(t, dbc, "fighter-a", "Jon Jones", 27, 1, 0)
	seedFighter(t, dbc, "fighter-b", "Deiveson Figueiredo", 24, 3, 1)
	seedFighter(t, dbc, "fighter-c", "Marlon Jones", 10, 2, 0)

	seedFight(t, dbc, models.Fight{ID: "fight-1", EventID: "event-1", FighterAID: "fighter-a", FighterBID: "fighter-b", WinnerID: "fighter-a", Method: "Decision", Round: 5})
	seedFight(t, dbc, models.Fight{ID: "fight-2", EventID: "event-1", FighterAID: "fighter-c", FighterBID: "fighter-b", WinnerID: "fighter-b", Method: "KO/TKO", Round: 2})

	history, err := GetFighterHistory(dbc, "jones")
	require.NoError(t, err)

	assert.Len(t, history.Fighters, 2)
	require.Len(t, history.Rows, 2)

	// Both rows are against Figueiredo: Jon Jones won his bout, Marlon Jones
	// lost his.
	results := []string{}
	for _, row := range history.Rows {
		assert.Equal(t, "Deiveson Figueiredo", row.Opponent)
		results = append(results, row.Result)
	}
	assert.ElementsMatch(t, []string{"Win", "Loss"}, results)
}

func TestGetFighterHistoryNoMatch(t *testing.T) {
	dbc := newTestDB(t)

	history, err := GetFighterHistory(dbc, "nobody")
	require.NoError(t, err)
	assert.Empty(t, history.Rows)
	assert.Empty(t, history.Fighters)
	assert.Contains(t, history.Message, "No fighter found")
}

func TestGetFighterHistoryNoFightsRecorded(t *testing.T) {
	dbc := newTestDB(t)

	seedFighter(t, dbc, "fighter-a", "Jon Jones", 27, 1, 0)

	history, err := GetFighterHistory(dbc, "Jones")
	require.NoError(t, err)
	require.Len(t, history.Fighters, 1)
	assert.Empty(t, history.Rows)
	assert.Contains(t, history.Message, "No fights recorded")
}

func TestGetFighterHistoryBlankQuery(t *testing.T) {
	dbc := newTestDB(t)

	var validation *types.ValidationError
	_, err := GetFighterHistory(dbc, "   ")
	require.True(t, errors.As(err, &validation))
}
