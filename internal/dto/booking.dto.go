package dto

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// BookingSummary is what the customer sees right after booking.
type BookingSummary struct {
	ID         string `json:"id"`
	BarberID   string `json:"barber_id"`
	BarberName string `json:"barber_name"`
	Services   string `json:"services"`
	Total      string `json:"total"`
	TotalCents int64  `json:"total_cents"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type BookingListDTO struct {
	ID           string         `json:"id"`
	BarberID     string         `json:"barber_id"`
	BarberName   string         `json:"barber_name"`
	CustomerID   string         `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	Status       booking.Status `json:"status"`
	Services     string         `json:"services"`
	Total        string         `json:"total"`
	Rating       *int           `json:"rating,omitempty"`
	Review       *string        `json:"review,omitempty"`
}

func JoinServices(names []string) string {
	return strings.Join(names, ", ")
}

// NewBookingSummary formats b in loc.
func NewBookingSummary(b *models.BookedSlot, loc *time.Location) BookingSummary {
	start := b.StartTime.In(loc)
	return BookingSummary{
		ID:         b.ID,
		BarberID:   b.BarberID,
		BarberName: b.BarberName,
		Services:   JoinServices(b.ServiceNames),
		Total:      booking.FormatPrice(b.TotalCents),
		TotalCents: b.TotalCents,
		Date:       start.Format("Mon 02/01/2006"),
		Time:       start.Format("03:04 PM"),
	}
}

func NewBookingList(rows []models.BookedSlot, loc *time.Location, now time.Time) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(rows))
	for i := range rows {
		b := &rows[i]
		out = append(out, BookingListDTO{
			ID:           b.ID,
			BarberID:     b.BarberID,
			BarberName:   b.BarberName,
			CustomerID:   b.Customer.ID,
			CustomerName: b.Customer.DisplayName,
			StartTime:    b.StartTime.In(loc),
			EndTime:      b.EndTime.In(loc),
			Status:       booking.Of(b, now),
			Services:     JoinServices(b.ServiceNames),
			Total:        booking.FormatPrice(b.TotalCents),
			Rating:       b.Rating,
			Review:       b.Review,
		})
	}
	return out
}
