package models

import "time"

// OpenSlot is published, unbooked inventory. (barber_id, start_time) is unique.
type OpenSlot struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	BarberID    string    `gorm:"size:64;not null;uniqueIndex:idx_open_barber_start" json:"barber_id"`
	BarberEmail string    `gorm:"size:100" json:"barber_email"`
	StartTime   time.Time `gorm:"not null;uniqueIndex:idx_open_barber_start" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}
