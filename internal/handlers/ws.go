package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cageside-dev/cageside/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	leagueClients   = make(map[string]map[*websocket.Conn]bool)
	leagueClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// BroadcastRefresh tells every socket subscribed to the league that its
// leaderboard and pick data changed.
func BroadcastRefresh(leagueID string) {
	leagueClientsMu.RLock()
	clients, exists := leagueClients[leagueID]
	if !exists || len(clients) == 0 {
		leagueClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	leagueClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(map[string]string{
			"type":      "refresh",
			"message":   "League data updated",
			"league_id": leagueID,
		})

		if err != nil {
			log.Printf("Failed to broadcast refresh to client: %v", err)
			leagueClientsMu.Lock()
			if clients, exists := leagueClients[leagueID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(leagueClients, leagueID)
				}
			}
			leagueClientsMu.Unlock()
			conn.Close()
		}
	}
}

func WebSocket(c *gin.Context) {
	leagueID := c.Param("league_id")

	if leagueID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "League ID is required"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	leagueClientsMu.Lock()
	if leagueClients[leagueID] == nil {
		leagueClients[leagueID] = make(map[*websocket.Conn]bool)
	}
	leagueClients[leagueID][conn] = true
	leagueClientsMu.Unlock()

	defer func() {
		leagueClientsMu.Lock()

		if clients, exists := leagueClients[leagueID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(leagueClients, leagueID)
			}
		}

		leagueClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for league %s", leagueID)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":      "connected",
		"message":   "WebSocket connection established",
		"league_id": leagueID,
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for league %s: %v", leagueID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for league %s: %v", leagueID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for league %s: %v", leagueID, err)
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for league %s: %v", leagueID, err)
			}
			break
		}
	}
}
