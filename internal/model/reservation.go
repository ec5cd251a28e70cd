package model

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "PENDING"
	ReservationApproved ReservationStatus = "APPROVED"
	ReservationRejected ReservationStatus = "REJECTED"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationApproved, ReservationRejected:
		return true
	}
	return false
}

// Reservation is a student's request to occupy a room. It is created
// PENDING and transitions exactly once to APPROVED or REJECTED; approval
// spawns the one Contract tied to it.
type Reservation struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	StudentID   int64             `gorm:"index;not null" json:"student_id"`
	RoomID      int64             `gorm:"index;not null" json:"room_id"`
	BookingDate time.Time         `gorm:"not null" json:"booking_date"`
	StartDate   *time.Time        `gorm:"type:date" json:"start_date,omitempty"`
	Status      ReservationStatus `gorm:"size:16;index;not null;default:PENDING" json:"status"`

	// Associations
	Room     Room      `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Student  Student   `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Contract *Contract `gorm:"foreignKey:ReservationID" json:"-"`
}
