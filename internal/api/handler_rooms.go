package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dorm-management-backend/internal/lifecycle"
)

// ListRooms handles GET /api/rooms: every active room, cacheable.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rooms), "rooms": rooms})
}

// GetRoom handles GET /api/rooms/:room_id with the derived occupancy.
func (h *Handler) GetRoom(c *gin.Context) {
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}
	avail, err := h.rooms.GetAvailable(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

type createRoomRequest struct {
	Code     string          `json:"code" binding:"required"`
	Capacity int             `json:"capacity" binding:"required,gt=0"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// CreateRoom handles POST /api/admin/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), req.Code, req.Capacity, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

type updateRoomRequest struct {
	Code     *string          `json:"code"`
	Capacity *int             `json:"capacity"`
	Price    *decimal.Decimal `json:"price"`
}

// UpdateRoom handles PUT /api/admin/rooms/:room_id.
func (h *Handler) UpdateRoom(c *gin.Context) {
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), roomID, lifecycle.RoomUpdate{
		Code:     req.Code,
		Capacity: req.Capacity,
		Price:    req.Price,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type setRoomActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetRoomActive handles PATCH /api/admin/rooms/:room_id/active.
func (h *Handler) SetRoomActive(c *gin.Context) {
	roomID, ok := pathID(c, "room_id")
	if !ok {
		return
	}
	var req setRoomActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, err := h.rooms.SetActive(c.Request.Context(), roomID, *req.Active)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
