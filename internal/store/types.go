package store

import "dorm-management-backend/internal/model"

// SortOrder selects ascending or descending listing order.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ReservationSortKey names the columns a reservation listing can be
// ordered by.
type ReservationSortKey string

const (
	SortByBookingDate ReservationSortKey = "booking_date"
	SortByStartDate   ReservationSortKey = "start_date"
)

// ReservationFilter narrows and orders a reservation listing. Nil fields
// are not applied. Ties are always broken by id ascending so repeated
// listings are stable.
type ReservationFilter struct {
	Status    *model.ReservationStatus
	RoomID    *int64
	StudentID *int64
	SortKey   ReservationSortKey
	Order     SortOrder
}

// InvoiceFilter narrows an invoice listing. Nil fields are not applied.
type InvoiceFilter struct {
	Month  *int
	Year   *int
	Status *model.InvoiceStatus
}
