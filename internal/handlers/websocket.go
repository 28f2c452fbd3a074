package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/unboxus/unbox-server/internal/database"
	ws "github.com/unboxus/unbox-server/internal/websocket"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	db       *database.Database
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, db *database.Database) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		db:  db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Subscribe upgrades the connection and attaches it to a room's snapshot
// feed. The first snapshot arrives right after the upgrade.
func (h *WebSocketHandler) Subscribe(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	exists, err := h.db.RoomExists(c.Request.Context(), roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check room"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, roomID)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
