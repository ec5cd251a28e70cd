package api

import (
	"dorm-management-backend/internal/lifecycle"
)

// Handler holds the lifecycle services the HTTP layer dispatches into.
type Handler struct {
	rooms        *lifecycle.RoomService
	reservations *lifecycle.ReservationService
	contracts    *lifecycle.ContractService
	invoices     *lifecycle.InvoiceService
	students     *lifecycle.StudentService
}

// NewHandler creates a new API handler.
func NewHandler(
	rooms *lifecycle.RoomService,
	reservations *lifecycle.ReservationService,
	contracts *lifecycle.ContractService,
	invoices *lifecycle.InvoiceService,
	students *lifecycle.StudentService,
) *Handler {
	return &Handler{
		rooms:        rooms,
		reservations: reservations,
		contracts:    contracts,
		invoices:     invoices,
		students:     students,
	}
}
