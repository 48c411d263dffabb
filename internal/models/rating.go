package models

import "time"

// Rating mirrors a booking's rating/review under its barber.
type Rating struct {
	BookingID    string    `gorm:"primaryKey;size:36" json:"booking_id"`
	BarberID     string    `gorm:"size:64;index;not null" json:"barber_id"`
	Rating       *int      `json:"rating,omitempty"`
	Review       *string   `gorm:"type:text" json:"review,omitempty"`
	ReviewerName string    `gorm:"size:100" json:"reviewer_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}
