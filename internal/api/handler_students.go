package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-management-backend/internal/lifecycle"
)

// GetMyProfile handles GET /api/student/me.
func (h *Handler) GetMyProfile(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// UpdateMyProfile handles PATCH /api/student/me.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, err := h.students.UpdateProfile(c.Request.Context(), studentID, lifecycle.ProfileUpdate{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}
