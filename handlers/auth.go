package handlers

import (
	"net/http"
	"strings"

	"task-server/apperrors"
	"task-server/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ContextUserID is the gin context key holding the authenticated user's id.
const ContextUserID = "userID"

// RequireAuth rejects requests without a valid session token. Browsers cannot
// set headers on websocket handshakes, so upgrades may pass ?token= instead.
func RequireAuth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && websocket.IsWebSocketUpgrade(c.Request) {
			token = c.Query("token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.MessageOf(err)})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// UserID returns the id stored by RequireAuth, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
