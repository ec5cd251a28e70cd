package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dorm-management-backend/internal/lifecycle"
)

// studentIDHeader carries the caller identity, injected by the auth
// gateway in front of this service. The backend trusts it as-is.
const studentIDHeader = "X-Student-ID"

// respondError is the single place lifecycle errors become status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, lifecycle.ErrInvalidState),
		errors.Is(err, lifecycle.ErrRoomFull),
		errors.Is(err, lifecycle.ErrDuplicateReservation),
		errors.Is(err, lifecycle.ErrInvalidRange),
		errors.Is(err, lifecycle.ErrInvalidArgument),
		errors.Is(err, lifecycle.ErrAlreadyPaid):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// callerStudentID extracts the authenticated student id. Responds 401 and
// returns false when the gateway did not supply one.
func callerStudentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader(studentIDHeader), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid student identity"})
		return 0, false
	}
	return id, true
}

// pathID parses a positive integer path parameter, responding 400 itself
// on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
