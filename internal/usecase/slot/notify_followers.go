package slot

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/notify"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// fanOutLimit bounds concurrent sends per notice.
const fanOutLimit = 8

// FollowerNotifier tells followers about newly opened slots. Opening
// slots flags the barber; a notice clears the flag. Flagged barbers
// nobody notified by hand are drained by NotifyPending.
type FollowerNotifier struct {
	store   domain.Store
	catalog catalog.Repository
	clock   *timezone.Clock
	sender  notify.Sender
	log     *slog.Logger
}

func NewFollowerNotifier(
	store domain.Store,
	catalog catalog.Repository,
	clock *timezone.Clock,
	sender notify.Sender,
	log *slog.Logger,
) *FollowerNotifier {
	return &FollowerNotifier{
		store:   store,
		catalog: catalog,
		clock:   clock,
		sender:  sender,
		log:     log,
	}
}

// Notify sends one notice about keys of date. Delivery is best effort;
// the flag is cleared whatever the per-recipient outcome.
func (uc *FollowerNotifier) Notify(
	ctx context.Context,
	barberID string,
	date string,
	keys []string,
) (notify.Result, error) {

	barber, err := uc.catalog.GetBarber(ctx, barberID)
	if err != nil {
		return notify.Result{}, err
	}
	res, err := uc.send(ctx, barberID, barber.Name, date, keys)
	if err != nil {
		return res, err
	}

	if err := uc.catalog.SetPendingNotification(ctx, barberID, false); err != nil {
		uc.log.Warn("clear pending notification", slog.String("barber_id", barberID), slog.Any("err", err))
	}
	return res, nil
}

// NotifyPending notices the followers of every flagged barber about
// their upcoming open slots, one notice per day, and clears the flag.
// It returns how many barbers were handled.
func (uc *FollowerNotifier) NotifyPending(ctx context.Context) (int, error) {
	ids, err := uc.catalog.ListPendingNotification(ctx)
	if err != nil {
		return 0, err
	}

	handled := 0
	for _, id := range ids {
		if err := uc.drain(ctx, id); err != nil {
			uc.log.Warn("pending notification failed", slog.String("barber_id", id), slog.Any("err", err))
			continue
		}
		handled++
	}
	return handled, nil
}

func (uc *FollowerNotifier) drain(ctx context.Context, barberID string) error {
	barber, err := uc.catalog.GetBarber(ctx, barberID)
	if err != nil {
		return err
	}
	open, err := uc.store.QueryOpen(ctx, domain.OpenQuery{
		BarberID: barberID,
		From:     uc.clock.Now(),
	})
	if err != nil {
		return err
	}

	// QueryOpen is ordered by start, so days come out in order
	var days []string
	byDay := map[string][]string{}
	for _, o := range open {
		day := uc.clock.ToLocal(o.StartTime).Format(timezone.DateLayout)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], domain.Key(uc.clock.ToLocal(o.StartTime)))
	}

	for _, day := range days {
		if _, err := uc.send(ctx, barberID, barber.Name, day, byDay[day]); err != nil {
			return err
		}
	}
	return uc.catalog.SetPendingNotification(ctx, barberID, false)
}

func (uc *FollowerNotifier) send(
	ctx context.Context,
	barberID string,
	barberName string,
	date string,
	keys []string,
) (notify.Result, error) {

	followers, err := uc.catalog.ListFollowers(ctx, barberID)
	if err != nil {
		return notify.Result{}, err
	}

	n := notify.SlotsOpened{
		BarberID:   barberID,
		BarberName: barberName,
		Date:       date,
		Starts:     keys,
		SentAt:     uc.clock.Now(),
	}
	res := notify.FanOut(ctx, uc.log, uc.sender, followers, n, fanOutLimit)

	uc.log.Info("followers notified",
		slog.String("barber_id", barberID),
		slog.String("date", date),
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}
