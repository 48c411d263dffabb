package slot

import (
	"context"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// ListBookable is the client's view of a barber's inventory: open slots
// that have not started yet.
type ListBookable struct {
	store domain.Store
	clock *timezone.Clock
}

func NewListBookable(store domain.Store, clock *timezone.Clock) *ListBookable {
	return &ListBookable{store: store, clock: clock}
}

// Execute lists from now on, or only within date when one is given.
func (uc *ListBookable) Execute(
	ctx context.Context,
	barberID string,
	date string,
) ([]models.OpenSlot, error) {

	now := uc.clock.Now()
	q := domain.OpenQuery{BarberID: barberID, From: now}

	if date != "" {
		day, err := uc.clock.ParseDate(date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		if start := uc.clock.StartOfDay(day); start.After(now) {
			q.From = start
		}
		q.To = uc.clock.EndOfDay(day)
		if !q.To.After(now) {
			return []models.OpenSlot{}, nil
		}
	}

	return uc.store.QueryOpen(ctx, q)
}
