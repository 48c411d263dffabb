package models

import "time"

// Follower is a client subscribed to a barber's "new slots" notices.
type Follower struct {
	BarberID   string    `gorm:"primaryKey;size:64" json:"barber_id"`
	CustomerID string    `gorm:"primaryKey;size:64" json:"customer_id"`
	Username   string    `gorm:"size:100" json:"username"`
	Phone      string    `gorm:"size:20" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
}
