package model

import "time"

// Student holds the profile data of a dorm resident. Account credentials
// live in the auth gateway; the backend only keys off the student ID it is
// handed.
type Student struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Birth     time.Time `gorm:"type:date" json:"birth"`
	Gender    string    `gorm:"size:16" json:"gender"`
	Phone     string    `gorm:"uniqueIndex;size:20" json:"phone"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
