package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// CancelBooking gives an upcoming booking back to the barber's open
// inventory. Chosen services are not kept.
type CancelBooking struct {
	store slot.Store
	clock *timezone.Clock
	audit *audit.Dispatcher
}

func NewCancelBooking(
	store slot.Store,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		store: store,
		clock: clock,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID string,
	customerID string,
) (*models.OpenSlot, error) {

	b, err := uc.store.GetBooked(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Customer.ID != customerID {
		return nil, domain.ErrNotOwner
	}
	if err := domain.CanCancel(domain.Of(b, uc.clock.Now())); err != nil {
		return nil, err
	}

	open := &models.OpenSlot{
		ID:          b.ID,
		BarberID:    b.BarberID,
		BarberEmail: b.BarberEmail,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
	}
	if err := uc.store.ConvertBookedToOpen(ctx, b.ID, customerID, open); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarberID: b.BarberID,
		ActorID:  customerID,
		Action:   audit.ActionBookingCancelled,
		Entity:   "booking",
		EntityID: b.ID,
	})

	return open, nil
}
