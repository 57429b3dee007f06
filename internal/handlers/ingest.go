package handlers

import (
	"log"
	"net/http"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/services"
	"github.com/cageside-dev/cageside/internal/types"
	"github.com/gin-gonic/gin"
)

// IngestEvent accepts externally sourced event data. The payload is taken as
// a raw map because upstream feeds disagree on field names; the service layer
// resolves the aliases.
func IngestEvent(ctx *gin.Context) {
	var payload map[string]interface{}

	if err := ctx.BindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	event, result, err := services.IngestEvent(db.DB, payload)

	if err != nil {
		status := types.StatusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("Failed to ingest event: %v", err)
		}
		ctx.JSON(status, gin.H{"error": types.ClientMessage(err)})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Event ingested successfully",
		"event_id": event.ID,
		"fighters": result.Fighters,
		"fights":   result.Fights,
	})
}
