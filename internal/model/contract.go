package model

import "time"

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractActive   ContractStatus = "ACTIVE"
	ContractEnded    ContractStatus = "ENDED"
	ContractCanceled ContractStatus = "CANCELED"
)

// Contract is the binding occupancy agreement created when a reservation is
// approved. Start date is the first day of the month after approval, end
// date twelve calendar months later.
type Contract struct {
	ID            int64          `gorm:"primaryKey" json:"id"`
	ReservationID int64          `gorm:"uniqueIndex;not null" json:"reservation_id"`
	StartDate     time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate       time.Time      `gorm:"type:date;not null;index" json:"end_date"`
	Status        ContractStatus `gorm:"size:16;index;not null;default:ACTIVE" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Associations
	Reservation Reservation `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Invoices    []Invoice   `gorm:"foreignKey:ContractID" json:"-"`
}
