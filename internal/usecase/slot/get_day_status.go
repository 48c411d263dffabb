package slot

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

type GetDayStatus struct {
	store  domain.Store
	policy domain.Policy
	clock  *timezone.Clock
	log    *slog.Logger
}

func NewGetDayStatus(
	store domain.Store,
	policy domain.Policy,
	clock *timezone.Clock,
	log *slog.Logger,
) *GetDayStatus {
	return &GetDayStatus{
		store:  store,
		policy: policy,
		clock:  clock,
		log:    log,
	}
}

func (uc *GetDayStatus) Execute(
	ctx context.Context,
	barberID string,
	date string,
) (*domain.DayStatus, error) {

	day, err := uc.clock.ParseDate(date)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	return uc.ForDay(ctx, barberID, day)
}

// ForDay is Execute for an already parsed civil day.
func (uc *GetDayStatus) ForDay(
	ctx context.Context,
	barberID string,
	day time.Time,
) (*domain.DayStatus, error) {

	from := uc.clock.StartOfDay(day)
	to := uc.clock.EndOfDay(day)
	now := uc.clock.Now()

	open, err := uc.store.QueryOpen(ctx, domain.OpenQuery{
		BarberID: barberID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}

	booked, err := uc.store.QueryBooked(ctx, domain.BookedQuery{
		BarberID: barberID,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}

	ds := domain.ComputeDayStatus(uc.policy.Generate(from, barberID), open, booked, now)
	ds.Date = from.Format(timezone.DateLayout)

	if len(ds.Inconsistent) > 0 {
		uc.log.Warn("open and booked records share a start time",
			slog.String("barber_id", barberID),
			slog.Any("starts", ds.Inconsistent),
		)
	}

	return &ds, nil
}
