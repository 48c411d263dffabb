package slot

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// Sweeper deletes open slots whose start has passed without a booking.
type Sweeper struct {
	store   domain.Store
	catalog catalog.Repository
	clock   *timezone.Clock
	audit   *audit.Dispatcher
	log     *slog.Logger
}

func NewSweeper(
	store domain.Store,
	catalog catalog.Repository,
	clock *timezone.Clock,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *Sweeper {
	return &Sweeper{
		store:   store,
		catalog: catalog,
		clock:   clock,
		audit:   audit,
		log:     log,
	}
}

// Sweep returns how many slots it removed. Running it again right after
// removes nothing and is not an error.
func (uc *Sweeper) Sweep(ctx context.Context, barberID string) (int, error) {
	stale, err := uc.store.QueryOpen(ctx, domain.OpenQuery{
		BarberID: barberID,
		To:       uc.clock.Now(),
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, o := range stale {
		ok, err := uc.store.DeleteOpen(ctx, o.ID)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}

	if removed > 0 {
		uc.audit.Dispatch(audit.Event{
			BarberID: barberID,
			Action:   audit.ActionSlotsSwept,
			Entity:   "open_slot",
			Metadata: map[string]int{"removed": removed},
		})
	}
	return removed, nil
}

// SweepAll runs Sweep for every known barber. A failing barber is logged
// and the rest still run.
func (uc *Sweeper) SweepAll(ctx context.Context) (int, error) {
	ids, err := uc.catalog.ListBarberIDs(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, id := range ids {
		n, err := uc.Sweep(ctx, id)
		total += n
		if err != nil {
			uc.log.Warn("sweep failed", slog.String("barber_id", id), slog.Any("err", err))
		}
	}

	uc.log.Info("sweep finished", slog.Int("barbers", len(ids)), slog.Int("removed", total))
	return total, nil
}
