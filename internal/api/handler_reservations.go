package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

type createReservationRequest struct {
	RoomID      int64      `json:"room_id" binding:"required,gt=0"`
	BookingDate *time.Time `json:"booking_date"`
}

// CreateReservation handles POST /api/student/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookingDate := time.Time{}
	if req.BookingDate != nil {
		bookingDate = *req.BookingDate
	}
	r, err := h.reservations.Create(c.Request.Context(), studentID, req.RoomID, bookingDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "reservation created", "reservation": r})
}

// CancelReservation handles DELETE /api/student/reservations/:reservation_id.
func (h *Handler) CancelReservation(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	reservationID, ok := pathID(c, "reservation_id")
	if !ok {
		return
	}
	if err := h.reservations.Cancel(c.Request.Context(), reservationID, studentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation canceled"})
}

// ListMyReservations handles GET /api/student/reservations.
func (h *Handler) ListMyReservations(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	f := store.ReservationFilter{StudentID: &studentID}
	if status := c.Query("status"); status != "" {
		st := model.ReservationStatus(status)
		f.Status = &st
	}
	reservations, err := h.reservations.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// ListReservations handles GET /api/admin/reservations with the full
// filter and sort surface.
func (h *Handler) ListReservations(c *gin.Context) {
	var f store.ReservationFilter

	if status := c.Query("status"); status != "" {
		st := model.ReservationStatus(status)
		f.Status = &st
	}
	if raw := c.Query("room_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_id"})
			return
		}
		f.RoomID = &id
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
			return
		}
		f.StudentID = &id
	}
	if c.Query("sort_by") == "start_date" {
		f.SortKey = store.SortByStartDate
	}
	if c.Query("order") == "desc" {
		f.Order = store.OrderDesc
	}

	reservations, err := h.reservations.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

type reservationDecisionRequest struct {
	NewStatus model.ReservationStatus `json:"new_status" binding:"required"`
}

// DecideReservation handles PUT /api/admin/reservations/:reservation_id/status.
// APPROVED creates the contract; REJECTED closes the reservation.
func (h *Handler) DecideReservation(c *gin.Context) {
	reservationID, ok := pathID(c, "reservation_id")
	if !ok {
		return
	}
	var req reservationDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.NewStatus {
	case model.ReservationApproved:
		contract, err := h.contracts.Approve(c.Request.Context(), reservationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reservation approved", "contract": contract})
	case model.ReservationRejected:
		r, err := h.contracts.Reject(c.Request.Context(), reservationID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reservation rejected", "reservation": r})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_status must be APPROVED or REJECTED"})
	}
}
