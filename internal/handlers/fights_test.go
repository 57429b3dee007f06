package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cageside-dev/cageside/db"
	"github.com/cageside-dev/cageside/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupHandlerDB points the global handle at a fresh in-memory database for
// the duration of one test.
func setupHandlerDB(t *testing.T, schema ...interface{}) {
	t.Helper()

	dbc, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty in-memory database.
	sqlDB, err := dbc.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbc.AutoMigrate(schema...))

	prev := db.DB
	db.DB = dbc
	t.Cleanup(func() { db.DB = prev })
}

func TestListEventsReturnsOnlyUpcoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupHandlerDB(t, &models.Event{})

	now := time.Now()
	require.NoError(t, db.DB.Create(&models.Event{ID: "event-past", Name: "Old Card", Date: now.Add(-48 * time.Hour)}).Error)
	require.NoError(t, db.DB.Create(&models.Event{ID: "event-late", Name: "Later Card", Date: now.Add(72 * time.Hour)}).Error)
	require.NoError(t, db.DB.Create(&models.Event{ID: "event-soon", Name: "Next Card", Date: now.Add(24 * time.Hour)}).Error)

	router := gin.New()
	router.GET("/api/events", ListEvents)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    []EventResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, "event-soon", body.Data[0].ID)
	assert.Equal(t, "event-late", body.Data[1].ID)
}
