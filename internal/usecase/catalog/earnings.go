package catalog

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

type EarningsReport struct {
	Today     string `json:"today"`
	Week      string `json:"week"`
	Month     string `json:"month"`
	AllTime   string `json:"all_time"`
	Completed int    `json:"completed"`
}

// Earnings sums completed bookings. Weeks start on Sunday.
type Earnings struct {
	store slot.Store
	clock *timezone.Clock
}

func NewEarnings(store slot.Store, clock *timezone.Clock) *Earnings {
	return &Earnings{store: store, clock: clock}
}

func (uc *Earnings) Execute(ctx context.Context, barberID string) (*EarningsReport, error) {
	done := true
	rows, err := uc.store.QueryBooked(ctx, slot.BookedQuery{
		BarberID:  barberID,
		Completed: &done,
	})
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	today := uc.clock.StartOfDay(now)
	week := today.AddDate(0, 0, -int(today.Weekday()))
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	tomorrow := uc.clock.EndOfDay(now)

	var d, w, m, all int64
	for _, b := range rows {
		at := b.StartTime
		all += b.TotalCents
		if at.Before(tomorrow) && !at.Before(month) {
			m += b.TotalCents
		}
		if at.Before(tomorrow) && !at.Before(week) {
			w += b.TotalCents
		}
		if at.Before(tomorrow) && !at.Before(today) {
			d += b.TotalCents
		}
	}

	return &EarningsReport{
		Today:     booking.FormatPrice(d),
		Week:      booking.FormatPrice(w),
		Month:     booking.FormatPrice(m),
		AllTime:   booking.FormatPrice(all),
		Completed: len(rows),
	}, nil
}
