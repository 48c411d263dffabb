package models

import "time"

// Barber is the provider side of the platform.
type Barber struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;index" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	Address    string `gorm:"size:255" json:"address"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Region     string `gorm:"size:50;index" json:"region"`

	Instagram     string `gorm:"size:255" json:"instagram,omitempty"`
	Facebook      string `gorm:"size:255" json:"facebook,omitempty"`
	Website       string `gorm:"size:255" json:"website,omitempty"`
	PortfolioLink string `gorm:"size:255" json:"portfolio_link,omitempty"`

	ActiveDescriptionID *string `gorm:"size:36" json:"active_description_id"`
	PendingNotification bool    `gorm:"default:false" json:"pending_notification"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
