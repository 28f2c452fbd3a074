package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/database"
	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/middleware"
	"github.com/unboxus/unbox-server/internal/models"
	"github.com/unboxus/unbox-server/internal/session"
	"github.com/unboxus/unbox-server/internal/websocket"
)

const sessionTokenHeader = "X-Session-Token"

type AnswerHandler struct {
	db        *database.Database
	lifecycle *game.Lifecycle
	reveal    *game.RevealService
	sessions  *session.Store
	hub       *websocket.Hub
}

func NewAnswerHandler(db *database.Database, lifecycle *game.Lifecycle, reveal *game.RevealService, sessions *session.Store, hub *websocket.Hub) *AnswerHandler {
	return &AnswerHandler{db: db, lifecycle: lifecycle, reveal: reveal, sessions: sessions, hub: hub}
}

// Submit records one participant's full answer batch. The batch is
// all-or-nothing and only accepted while the room is collecting. On success
// the caller's device session is marked submitted for this room.
func (h *AnswerHandler) Submit(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req struct {
		Nickname string             `json:"nickname" binding:"required"`
		Answers  []game.AnswerEntry `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	room, err := h.db.GetRoomByID(ctx, roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	token := c.GetHeader(sessionTokenHeader)
	existing, err := h.sessions.Get(ctx, token)
	if err != nil {
		log.Printf("session lookup failed: %v", err)
	}
	if session.AlreadySubmitted(existing, room.Code) {
		c.JSON(http.StatusConflict, gin.H{"error": "this device already submitted for this room"})
		return
	}

	if err := h.lifecycle.SubmitAnswers(ctx, room, req.Nickname, req.Answers); err != nil {
		respondError(c, err)
		return
	}

	token, err = h.sessions.Save(ctx, token, models.Participant{
		Nickname:     req.Nickname,
		RoomCode:     room.Code,
		HasSubmitted: true,
	})
	if err != nil {
		// The answers are in; a lost session record only costs the
		// device its lockout, so log and carry on.
		log.Printf("session save failed: %v", err)
	}

	h.hub.NotifyRoom(room.ID)

	c.JSON(http.StatusCreated, gin.H{"session_token": token})
}

// ToggleReveal flips one answer's visible state. Revealing persists before it
// applies; re-hiding stays local to the host's view.
func (h *AnswerHandler) ToggleReveal(c *gin.Context) {
	answerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid answer id"})
		return
	}

	ctx := c.Request.Context()
	roomID := c.MustGet(middleware.HostRoomIDKey).(uuid.UUID)
	room, err := h.db.GetRoomByID(ctx, roomID)
	if err != nil {
		respondError(c, err)
		return
	}

	visible, err := h.reveal.Toggle(ctx, room, answerID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.NotifyRoom(room.ID)

	c.JSON(http.StatusOK, gin.H{"answer_id": answerID, "is_revealed": visible})
}

// GetGrouped returns the room's answers grouped by participant nickname.
func (h *AnswerHandler) GetGrouped(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	groups, err := h.db.GetAnswersGroupedByParticipant(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"participants":      groups,
		"participant_count": len(groups),
	})
}
