package httpHandler

import (
	"log"
	"net/http"

	"task-server/apperrors"

	"github.com/gin-gonic/gin"
)

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidArgument, apperrors.KindConflict, apperrors.KindInvalidCredential:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message} with the status for its kind.
func respondError(c *gin.Context, err error) {
	status := statusFor(apperrors.KindOf(err))
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": apperrors.MessageOf(err)})
}

func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}
