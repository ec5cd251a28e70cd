package model

import "github.com/shopspring/decimal"

// Room represents a dormitory room. Occupancy is never stored; it is always
// derived from the count of APPROVED reservations for the room.
type Room struct {
	ID       int64           `gorm:"primaryKey" json:"id"`
	Code     string          `gorm:"uniqueIndex;size:64;not null" json:"code"`
	Capacity int             `gorm:"not null" json:"capacity"`
	Price    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	Active   bool            `gorm:"not null;default:true" json:"active"`

	// Associations
	Reservations []Reservation `gorm:"foreignKey:RoomID" json:"-"`
}
