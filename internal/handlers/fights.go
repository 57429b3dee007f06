package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/services"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/gin-gonic/gin"
)

type EventResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// ListEvents returns upcoming events only, soonest first. Past events stay
// reachable through their fight cards and fighter histories.
func ListEvents(ctx *gin.Context) {
	var events []models.Event

	if err := db.DB.Where("date >= ?", time.Now()).Order("date ASC").Find(&events).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve events"})
		return
	}

	response := []EventResponse{}
	for _, event := range events {
		response = append(response, EventResponse{
			ID:       event.ID,
			Name:     event.Name,
			Date:     event.Date,
			Location: event.Location,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": response})
}

func GetEventFights(ctx *gin.Context) {
	eventID := ctx.Param("event_id")

	views, err := services.GetFightsForEvent(db.DB, eventID)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to load fights for event %s: %v", eventID, err)
		}
		ctx.JSON(status, gin.H{"success": false, "error": types.ClientMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

func GetFighterHistory(ctx *gin.Context) {
	name := ctx.Query("name")

	history, err := services.GetFighterHistory(db.DB, name)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to load fighter history for %q: %v", name, err)
		}
		ctx.JSON(status, gin.H{"success": false, "error": types.ClientMessage(err)})
		return
	}

	response := gin.H{
		"success":  true,
		"data":     history.Rows,
		"fighters": history.Fighters,
	}
	if history.Message != "" {
		response["message"] = history.Message
	}

	ctx.JSON(http.StatusOK, response)
}
