package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/dto"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// DefaultPastWindow bounds the customer's history when no date is given.
const DefaultPastWindow = 180 * 24 * time.Hour

type ListBookings struct {
	store slot.Store
	clock *timezone.Clock
}

func NewListBookings(store slot.Store, clock *timezone.Clock) *ListBookings {
	return &ListBookings{store: store, clock: clock}
}

// ======================================================
// CUSTOMER
// ======================================================

func (uc *ListBookings) Upcoming(ctx context.Context, customerID string) ([]dto.BookingListDTO, error) {
	now := uc.clock.Now()
	return uc.list(ctx, slot.BookedQuery{
		CustomerID: customerID,
		From:       now.Add(time.Microsecond),
		Completed:  ptr(false),
		NoShow:     ptr(false),
	}, nil)
}

// Past lists completed and no-show bookings since the given time,
// newest first.
func (uc *ListBookings) Past(ctx context.Context, customerID string, since time.Time) ([]dto.BookingListDTO, error) {
	if since.IsZero() {
		since = uc.clock.Now().Add(-DefaultPastWindow)
	}
	return uc.list(ctx, slot.BookedQuery{
		CustomerID: customerID,
		From:       since,
		Desc:       true,
	}, func(b *models.BookedSlot) bool {
		return b.Completed || b.NoShow
	})
}

func (uc *ListBookings) CustomerCompleted(ctx context.Context, customerID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{CustomerID: customerID, Completed: ptr(true), Desc: true}, nil)
}

func (uc *ListBookings) CustomerNoShow(ctx context.Context, customerID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{CustomerID: customerID, NoShow: ptr(true), Desc: true}, nil)
}

// ======================================================
// BARBER
// ======================================================

// Pending lists bookings that started and still wait for an outcome.
func (uc *ListBookings) Pending(ctx context.Context, barberID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{
		BarberID:  barberID,
		To:        uc.clock.Now().Add(time.Microsecond),
		Completed: ptr(false),
		NoShow:    ptr(false),
	}, nil)
}

func (uc *ListBookings) BarberUpcoming(ctx context.Context, barberID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{
		BarberID:  barberID,
		From:      uc.clock.Now().Add(time.Microsecond),
		Completed: ptr(false),
		NoShow:    ptr(false),
	}, nil)
}

func (uc *ListBookings) Completed(ctx context.Context, barberID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{BarberID: barberID, Completed: ptr(true), Desc: true}, nil)
}

func (uc *ListBookings) NoShow(ctx context.Context, barberID string) ([]dto.BookingListDTO, error) {
	return uc.list(ctx, slot.BookedQuery{BarberID: barberID, NoShow: ptr(true), Desc: true}, nil)
}

// ======================================================
// DETAIL
// ======================================================

// Get returns one booking to its barber or to its customer.
func (uc *ListBookings) Get(ctx context.Context, sc session.Context, bookingID string) (*dto.BookingListDTO, error) {
	b, err := uc.store.GetBooked(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BarberID != sc.UserID && b.Customer.ID != sc.UserID {
		return nil, domain.ErrBookingNotFound
	}

	out := dto.NewBookingList([]models.BookedSlot{*b}, uc.clock.Location(), uc.clock.Now())
	return &out[0], nil
}

func (uc *ListBookings) list(
	ctx context.Context,
	q slot.BookedQuery,
	keep func(*models.BookedSlot) bool,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.store.QueryBooked(ctx, q)
	if err != nil {
		return nil, err
	}
	if keep != nil {
		kept := rows[:0]
		for i := range rows {
			if keep(&rows[i]) {
				kept = append(kept, rows[i])
			}
		}
		rows = kept
	}
	return dto.NewBookingList(rows, uc.clock.Location(), uc.clock.Now()), nil
}

func ptr[T any](v T) *T {
	return &v
}
