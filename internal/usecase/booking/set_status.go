package booking

import (
	"context"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// SetBookingStatus marks a started booking as completed or no-show.
// Asking for the state it already has succeeds without writing.
type SetBookingStatus struct {
	store slot.Store
	clock *timezone.Clock
	audit *audit.Dispatcher
}

func NewSetBookingStatus(
	store slot.Store,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
) *SetBookingStatus {
	return &SetBookingStatus{
		store: store,
		clock: clock,
		audit: audit,
	}
}

func (uc *SetBookingStatus) Execute(
	ctx context.Context,
	barberID string,
	bookingID string,
	target domain.Status,
) (*models.BookedSlot, error) {

	b, err := uc.store.GetBooked(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.BarberID != barberID {
		return nil, domain.ErrNotBarber
	}

	current := domain.Of(b, uc.clock.Now())
	if current == target {
		return b, nil
	}
	if err := domain.CanTransition(current, target); err != nil {
		return nil, err
	}

	completed, noShow := domain.Flags(target)
	ok, err := uc.store.SetOutcome(ctx, b.ID, completed, noShow)
	if err != nil {
		return nil, err
	}
	if !ok {
		// someone else settled it first
		fresh, err := uc.store.GetBooked(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if domain.Of(fresh, uc.clock.Now()) == target {
			return fresh, nil
		}
		return nil, domain.ErrInvalidState
	}

	b.Completed, b.NoShow = completed, noShow

	action := audit.ActionBookingCompleted
	if target == domain.StatusNoShow {
		action = audit.ActionBookingNoShow
	}
	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		ActorID:  barberID,
		Action:   action,
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
