package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unboxus/unbox-server/internal/game"
	"github.com/unboxus/unbox-server/internal/models"
	"github.com/unboxus/unbox-server/internal/session"
)

type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Save stores the device's participant record. A device holds one session at
// a time; joining another room overwrites it.
func (h *SessionHandler) Save(c *gin.Context) {
	var req struct {
		Nickname     string `json:"nickname" binding:"required"`
		RoomCode     string `json:"room_code" binding:"required"`
		HasSubmitted bool   `json:"has_submitted"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Nickname) == "" || strings.TrimSpace(req.RoomCode) == "" {
		respondError(c, fmt.Errorf("%w: nickname and room code are required", game.ErrValidation))
		return
	}

	token, err := h.sessions.Save(c.Request.Context(), c.GetHeader(sessionTokenHeader), models.Participant{
		Nickname:     req.Nickname,
		RoomCode:     req.RoomCode,
		HasSubmitted: req.HasSubmitted,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to save session", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_token": token})
}

// Get returns the device's session record and, when a room_code is supplied,
// whether that specific room should show the already-submitted view.
func (h *SessionHandler) Get(c *gin.Context) {
	p, err := h.sessions.Get(c.Request.Context(), c.GetHeader(sessionTokenHeader))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to load session", "retryable": true})
		return
	}
	if p == nil {
		c.JSON(http.StatusOK, gin.H{"participant": nil, "already_submitted": false})
		return
	}

	alreadySubmitted := false
	if code := c.Query("room_code"); code != "" {
		alreadySubmitted = session.AlreadySubmitted(p, code)
	}

	c.JSON(http.StatusOK, gin.H{"participant": p, "already_submitted": alreadySubmitted})
}

// Clear drops the device's session record.
func (h *SessionHandler) Clear(c *gin.Context) {
	if err := h.sessions.Clear(c.Request.Context(), c.GetHeader(sessionTokenHeader)); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to clear session", "retryable": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session cleared"})
}
