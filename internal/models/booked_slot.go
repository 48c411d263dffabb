package models

import "time"

// Customer is the snapshot of who booked, stored on the booking itself.
type Customer struct {
	ID          string `gorm:"size:64;index" json:"id"`
	DisplayName string `gorm:"size:100" json:"display_name"`
	Phone       string `gorm:"size:20" json:"phone"`
}

// BookedSlot is a reservation. Its ID is the ID of the open slot it
// replaced. Barber name/email are copied at booking time and never
// follow later profile edits.
type BookedSlot struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	BarberID    string `gorm:"size:64;not null;uniqueIndex:idx_booked_barber_start" json:"barber_id"`
	BarberEmail string `gorm:"size:100" json:"barber_email"`
	BarberName  string `gorm:"size:100" json:"barber_name"`

	StartTime time.Time `gorm:"not null;uniqueIndex:idx_booked_barber_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	ServiceIDs   []string `gorm:"serializer:json" json:"service_ids"`
	ServiceNames []string `gorm:"serializer:json" json:"service_names"`
	TotalCents   int64    `json:"total_cents"`

	Completed bool `gorm:"default:false;index" json:"completed"`
	NoShow    bool `gorm:"default:false;index" json:"no_show"`

	Rating *int    `json:"rating,omitempty"`
	Review *string `gorm:"type:text" json:"review,omitempty"`

	Customer Customer `gorm:"embedded;embeddedPrefix:customer_" json:"customer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
