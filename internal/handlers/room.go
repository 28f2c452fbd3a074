package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/internal/database"
	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/middleware"
	"github.com/unboxus/unbox-server/internal/models"
	"github.com/unboxus/unbox-server/internal/websocket"
	"github.com/unboxus/unbox-server/pkg/auth"
)

type RoomHandler struct {
	db        *database.Database
	lifecycle *game.Lifecycle
	reveal    *game.RevealService
	hub       *websocket.Hub
	tokens    *auth.HostTokenManager
}

func NewRoomHandler(db *database.Database, lifecycle *game.Lifecycle, reveal *game.RevealService, hub *websocket.Hub, tokens *auth.HostTokenManager) *RoomHandler {
	return &RoomHandler{db: db, lifecycle: lifecycle, reveal: reveal, hub: hub, tokens: tokens}
}

// CreateRoom creates a room plus its question list and returns the host token
// the creating session uses for lifecycle and reveal calls.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		Name             string                   `json:"name" binding:"required"`
		Theme            string                   `json:"theme"`
		ParticipantCount int                      `json:"participant_count"`
		Questions        []database.QuestionDraft `json:"questions" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(c, fmt.Errorf("%w: room name is required", game.ErrValidation))
		return
	}
	if req.Theme == "" {
		req.Theme = models.ThemeChristmas
	}
	if req.Theme != models.ThemeChristmas && req.Theme != models.ThemeHorse {
		respondError(c, fmt.Errorf("%w: unknown theme %q", game.ErrValidation, req.Theme))
		return
	}
	if len(req.Questions) == 0 {
		respondError(c, fmt.Errorf("%w: at least one question is required", game.ErrValidation))
		return
	}
	for _, q := range req.Questions {
		if strings.TrimSpace(q.Text) == "" {
			respondError(c, fmt.Errorf("%w: question text is required", game.ErrValidation))
			return
		}
	}

	room, err := h.db.CreateRoom(c.Request.Context(), req.Name, req.Theme, req.ParticipantCount, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}

	hostToken, err := h.tokens.Generate(room.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue host token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"room": room, "host_token": hostToken})
}

// GetRoomByCode resolves a human-typed code to a full room.
func (h *RoomHandler) GetRoomByCode(c *gin.Context) {
	room, err := h.db.GetRoomByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	room, err := h.db.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// hostRoom loads the room addressed by the URL after checking the caller's
// host token was issued for that same room.
func (h *RoomHandler) hostRoom(c *gin.Context) (*models.Room, bool) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return nil, false
	}
	tokenRoomID := c.MustGet(middleware.HostRoomIDKey).(uuid.UUID)
	if tokenRoomID != roomID {
		c.JSON(http.StatusForbidden, gin.H{"error": "host token was issued for a different room"})
		return nil, false
	}
	room, err := h.db.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return room, true
}

// UpdateStatus advances the room's lifecycle. Transitions only move forward.
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	room, ok := h.hostRoom(c)
	if !ok {
		return
	}

	var req struct {
		Status models.RoomStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lifecycle.Advance(c.Request.Context(), room, req.Status); err != nil {
		respondError(c, err)
		return
	}
	if room.Status == models.StatusCompleted {
		h.reveal.Forget(room.ID)
	}

	// Nudge subscribers so every observer re-syncs around the transition.
	h.hub.NotifyRoom(room.ID)

	c.JSON(http.StatusOK, gin.H{"room": room})
}

// UpdateQuestionIndex persists the host's cursor into the question list.
func (h *RoomHandler) UpdateQuestionIndex(c *gin.Context) {
	room, ok := h.hostRoom(c)
	if !ok {
		return
	}

	var req struct {
		Index *int `json:"index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lifecycle.SetQuestionIndex(c.Request.Context(), room, *req.Index); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// GetReport returns the read-only projection an external renderer needs for
// the summary/export view.
func (h *RoomHandler) GetReport(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	room, err := h.db.GetRoomByID(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game.BuildReport(room))
}

// GetDefaultQuestions serves the stock prompts the create-room view offers.
func (h *RoomHandler) GetDefaultQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": game.DefaultQuestions()})
}
