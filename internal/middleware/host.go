package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unboxus/unbox-server/pkg/auth"
)

const HostRoomIDKey = "hostRoomID"

// HostAuth verifies the caller holds the host token for some room and stashes
// that room's id in the context. Handlers must still check it matches the
// room being operated on.
func HostAuth(tokens *auth.HostTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid host token"})
			c.Abort()
			return
		}

		subject, err := tokens.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid host token"})
			c.Abort()
			return
		}

		roomID, err := uuid.Parse(subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid host token"})
			c.Abort()
			return
		}

		c.Set(HostRoomIDKey, roomID)
		c.Next()
	}
}
