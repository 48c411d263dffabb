package models

import "time"

type Description struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	BarberID  string    `gorm:"size:64;index;not null" json:"barber_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
