package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/services"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/gin-gonic/gin"
)

type SavePicksRequest struct {
	UserID   string                   `json:"userId" binding:"required"`
	LeagueID string                   `json:"leagueId" binding:"required"`
	EventID  string                   `json:"eventId" binding:"required"`
	Picks    []services.PickSelection `json:"picks"`
}

func SavePicks(ctx *gin.Context) {
	var body SavePicksRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	result, err := services.SubmitPicks(db.DB, body.UserID, body.LeagueID, body.EventID, body.Picks)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to save picks for user %s: %v", body.UserID, err)
		}
		ctx.JSON(status, gin.H{"success": false, "error": types.ClientMessage(err)})
		return
	}

	BroadcastRefresh(body.LeagueID)

	go notifyPicksSubmitted(body.UserID, body.LeagueID, body.EventID, result.Saved)

	message := fmt.Sprintf("Saved %d picks", result.Saved)
	if result.Failed > 0 {
		message = fmt.Sprintf("Saved %d picks, %d failed", result.Saved, result.Failed)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    message,
		"picksCount": result.Saved,
	})
}

func GetUserPicks(ctx *gin.Context) {
	userID := ctx.Param("user_id")
	leagueID := ctx.Param("league_id")

	views, err := services.GetUserPicks(db.DB, userID, leagueID)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to load picks for user %s in league %s: %v", userID, leagueID, err)
		}
		ctx.JSON(status, gin.H{"success": false, "error": types.ClientMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

func notifyPicksSubmitted(userID, leagueID, eventID string, count int) {
	var league models.League
	if err := db.DB.First(&league, "id = ?", leagueID).Error; err != nil {
		return
	}

	if league.DiscordWebhook == "" && league.SlackWebhook == "" {
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		return
	}

	var event models.Event
	if err := db.DB.First(&event, "id = ?", eventID).Error; err != nil {
		return
	}

	if err := services.SendPicksSubmittedNotification(league, user, event, count); err != nil {
		log.Printf("Failed to send picks notification for league %s: %v", leagueID, err)
	}
}
