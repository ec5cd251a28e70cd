package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ListMyContracts handles GET /api/student/contracts.
func (h *Handler) ListMyContracts(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	contracts, err := h.contracts.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(contracts), "contracts": contracts})
}

// GetContract handles GET /api/admin/contracts/:contract_id.
func (h *Handler) GetContract(c *gin.Context) {
	contractID, ok := pathID(c, "contract_id")
	if !ok {
		return
	}
	contract, err := h.contracts.Get(c.Request.Context(), contractID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

type extendContractRequest struct {
	NewEndDate time.Time `json:"new_end_date" binding:"required" time_format:"2006-01-02"`
}

// ExtendContract handles PUT /api/admin/contracts/:contract_id/extend.
func (h *Handler) ExtendContract(c *gin.Context) {
	contractID, ok := pathID(c, "contract_id")
	if !ok {
		return
	}
	var req extendContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	oldEnd, newEnd, err := h.contracts.Extend(c.Request.Context(), contractID, req.NewEndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "contract extended",
		"contract_id":  contractID,
		"old_end_date": oldEnd.Format("2006-01-02"),
		"new_end_date": newEnd.Format("2006-01-02"),
	})
}

// ListExpiringContracts handles GET /api/admin/contracts/expiring?days=N.
func (h *Handler) ListExpiringContracts(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}

	contracts, err := h.contracts.ExpiringWithin(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":                len(contracts),
		"expiring_within_days": days,
		"contracts":            contracts,
	})
}
