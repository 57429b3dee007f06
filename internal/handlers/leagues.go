package handlers

import (
	"log"
	"net/http"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/models"
	"github.com/cageside-dev/cageside/internal/services"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/cageside-dev/cageside/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateLeagueRequest struct {
	Name           string         `json:"name" binding:"required"`
	ScoringRules   string         `json:"scoring_rules"`
	Settings       datatypes.JSON `json:"settings"`
	DiscordWebhook string         `json:"discord_webhook"`
	SlackWebhook   string         `json:"slack_webhook"`
}

type JoinLeagueRequest struct {
	Code string `json:"code" binding:"required"`
}

type LeagueResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OwnerID      string `json:"owner_id"`
	Code         string `json:"code"`
	ScoringRules string `json:"scoring_rules"`
	MemberCount  int64  `json:"member_count"`
}

type LeagueMemberResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func CreateLeague(ctx *gin.Context) {
	var body CreateLeagueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	league, err := services.CreateLeague(db.DB, userID, services.CreateLeagueParams{
		Name:           body.Name,
		ScoringRules:   body.ScoringRules,
		Settings:       body.Settings,
		DiscordWebhook: body.DiscordWebhook,
		SlackWebhook:   body.SlackWebhook,
	})

	if err != nil {
		respondServiceError(ctx, "Failed to create league", err)
		return
	}

	ctx.JSON(http.StatusCreated, LeagueResponse{
		ID:           league.ID,
		Name:         league.Name,
		OwnerID:      league.OwnerID,
		Code:         league.Code,
		ScoringRules: league.ScoringRules,
		MemberCount:  1,
	})
}

func ListLeagues(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var memberships []models.Membership

	if err := db.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leagues"})
		return
	}

	response := []LeagueResponse{}

	for _, membership := range memberships {
		var league models.League
		if err := db.DB.First(&league, "id = ?", membership.LeagueID).Error; err != nil {
			continue
		}

		var memberCount int64
		db.DB.Model(&models.Membership{}).Where("league_id = ?", league.ID).Count(&memberCount)

		response = append(response, LeagueResponse{
			ID:           league.ID,
			Name:         league.Name,
			OwnerID:      league.OwnerID,
			Code:         league.Code,
			ScoringRules: league.ScoringRules,
			MemberCount:  memberCount,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetLeague(ctx *gin.Context) {
	leagueID := ctx.Param("league_id")

	var league models.League
	if err := db.DB.First(&league, "id = ?", leagueID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "League not found"})
		return
	}

	var memberships []models.Membership
	if err := db.DB.Where("league_id = ?", leagueID).Find(&memberships).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}

	members := []LeagueMemberResponse{}
	for _, membership := range memberships {
		var user models.User
		if err := db.DB.First(&user, "id = ?", membership.UserID).Error; err != nil {
			continue
		}
		members = append(members, LeagueMemberResponse{
			UserID:   user.ID,
			Username: user.Username,
			Role:     membership.Role,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"league": LeagueResponse{
			ID:           league.ID,
			Name:         league.Name,
			OwnerID:      league.OwnerID,
			Code:         league.Code,
			ScoringRules: league.ScoringRules,
			MemberCount:  int64(len(members)),
		},
		"members": members,
	})
}

func JoinLeague(ctx *gin.Context) {
	var body JoinLeagueRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	league, err := services.JoinLeague(db.DB, currentUser.ID, body.Code)

	if err != nil {
		respondServiceError(ctx, "Failed to join league", err)
		return
	}

	go func() {
		user := models.User{ID: currentUser.ID, Username: currentUser.Username, Email: currentUser.Email}
		if err := services.SendMemberJoinedNotification(*league, user); err != nil {
			log.Printf("Failed to send join notification for league %s: %v", league.ID, err)
		}
	}()

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Joined league successfully",
		"league": LeagueResponse{
			ID:      league.ID,
			Name:    league.Name,
			OwnerID: league.OwnerID,
			Code:    league.Code,
		},
	})
}

func LeaveLeague(ctx *gin.Context) {
	leagueID := ctx.Param("league_id")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.LeaveLeague(db.DB, userID, leagueID); err != nil {
		respondServiceError(ctx, "Failed to leave league", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Left league successfully"})
}

func DeleteLeague(ctx *gin.Context) {
	leagueID := ctx.Param("league_id")

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.DeleteLeague(db.DB, userID, leagueID); err != nil {
		respondServiceError(ctx, "Failed to delete league", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetLeaderboard(ctx *gin.Context) {
	leagueID := ctx.Param("league_id")

	rows, err := services.GetLeaderboard(db.DB, leagueID)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to compute leaderboard for league %s: %v", leagueID, err)
		}
		ctx.JSON(status, gin.H{"success": false, "error": types.ClientMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// respondServiceError maps a typed service error onto the standard
// {"error": ...} body.
func respondServiceError(ctx *gin.Context, logContext string, err error) {
	status := types.StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", logContext, err)
	}
	ctx.JSON(status, gin.H{"error": types.ClientMessage(err)})
}
