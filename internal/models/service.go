package models

import "time"

type Service struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	BarberID string `gorm:"size:64;index;not null" json:"barber_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	PriceCents  int64  `gorm:"not null" json:"price_cents"`
	Description string `gorm:"size:500" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
