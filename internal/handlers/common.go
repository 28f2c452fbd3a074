package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unboxus/unbox-server/internal/game"
)

// respondError maps the core error taxonomy onto HTTP statuses. Store write
// failures are flagged retryable; the rest are not.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrRoomNotFound), errors.Is(err, game.ErrAnswerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrRoomNotAcceptingAnswers),
		errors.Is(err, game.ErrRoomNotUnboxing),
		errors.Is(err, game.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrWriteFailed),
		errors.Is(err, game.ErrCreateFailed),
		errors.Is(err, game.ErrCodeCollision):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error(), "retryable": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
