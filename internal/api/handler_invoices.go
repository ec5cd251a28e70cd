package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

type generateInvoicesRequest struct {
	Month int `json:"month" binding:"required"`
	Year  int `json:"year" binding:"required"`
}

// GenerateInvoices handles POST /api/admin/invoices/generate. Safe to
// re-run for the same cycle; the second run creates nothing.
func (h *Handler) GenerateInvoices(c *gin.Context) {
	var req generateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.invoices.Generate(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "invoice generation complete",
		"month":    req.Month,
		"year":     req.Year,
		"count":    len(created),
		"invoices": created,
	})
}

// queryInvoiceFilter parses the shared month/year/status query filter.
func queryInvoiceFilter(c *gin.Context) (store.InvoiceFilter, bool) {
	var f store.InvoiceFilter
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return f, false
		}
		f.Month = &month
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return f, false
		}
		f.Year = &year
	}
	if raw := c.Query("status"); raw != "" {
		status := model.InvoiceStatus(raw)
		f.Status = &status
	}
	return f, true
}

// ListInvoices handles GET /api/admin/invoices.
func (h *Handler) ListInvoices(c *gin.Context) {
	f, ok := queryInvoiceFilter(c)
	if !ok {
		return
	}
	invoices, err := h.invoices.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(invoices), "invoices": invoices})
}

// InvoiceStats handles GET /api/admin/invoices/stats.
func (h *Handler) InvoiceStats(c *gin.Context) {
	f, ok := queryInvoiceFilter(c)
	if !ok {
		return
	}
	stats, err := h.invoices.Stats(c.Request.Context(), f.Month, f.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListMyInvoices handles GET /api/student/invoices.
func (h *Handler) ListMyInvoices(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	invoices, err := h.invoices.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(invoices), "invoices": invoices})
}

// PayInvoice handles PUT /api/student/invoices/:invoice_id/pay.
func (h *Handler) PayInvoice(c *gin.Context) {
	studentID, ok := callerStudentID(c)
	if !ok {
		return
	}
	invoiceID, ok := pathID(c, "invoice_id")
	if !ok {
		return
	}
	inv, err := h.invoices.Pay(c.Request.Context(), invoiceID, studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice paid", "invoice": inv})
}
