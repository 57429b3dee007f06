package router

import (
	"time"

	"github.com/cageside-dev/cageside/internal/handlers"
	"github.com/cageside-dev/cageside/internal/middleware"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:league_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		leagues := api.Group("/leagues", middleware.AuthMiddleware())
		{
			leagues.POST("", handlers.CreateLeague)
			leagues.GET("", handlers.ListLeagues)
			leagues.GET("/:league_id", handlers.GetLeague)
			leagues.POST("/join", handlers.JoinLeague)
			leagues.DELETE("/:league_id/membership", handlers.LeaveLeague)
			leagues.DELETE("/:league_id", handlers.DeleteLeague)
		}

		// Pick ledger and read models
		api.POST("/save-picks", middleware.AuthMiddleware(), handlers.SavePicks)
		api.GET("/user-picks/:user_id/:league_id", middleware.AuthMiddleware(), handlers.GetUserPicks)
		api.GET("/leaderboard/:league_id", handlers.GetLeaderboard)
		api.GET("/events", handlers.ListEvents)
		api.GET("/event/:event_id/fights", handlers.GetEventFights)
		api.GET("/fighter/history", handlers.GetFighterHistory)

		// Entity-store boundary for externally sourced event data
		api.POST("/ingest/event", middleware.AuthMiddleware(), handlers.IngestEvent)
	}

	return r
}
