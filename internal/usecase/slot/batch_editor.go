package slot

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/notify"
	"github.com/BruksfildServices01/barber-slots/internal/observability"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type ConfirmResult struct {
	Mode    session.Mode `json:"mode"`
	Date    string       `json:"date"`
	Applied []string     `json:"applied"`
	Skipped []string     `json:"skipped,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

// BatchEditor lets a barber select several slots of one day and then
// open or close them together. The selection lives in the session
// store between calls.
type BatchEditor struct {
	store    domain.Store
	catalog  catalog.Repository
	sessions session.Store
	days     *GetDayStatus
	policy   domain.Policy
	clock    *timezone.Clock
	notifier *FollowerNotifier
	audit    *audit.Dispatcher
	log      *slog.Logger
}

func NewBatchEditor(
	store domain.Store,
	catalog catalog.Repository,
	sessions session.Store,
	days *GetDayStatus,
	policy domain.Policy,
	clock *timezone.Clock,
	sender notify.Sender,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *BatchEditor {
	return &BatchEditor{
		store:    store,
		catalog:  catalog,
		sessions: sessions,
		days:     days,
		policy:   policy,
		clock:    clock,
		notifier: NewFollowerNotifier(store, catalog, clock, sender, log),
		audit:    audit,
		log:      log,
	}
}

// ======================================================
// SELECTION
// ======================================================

// Begin enters mode for date, dropping any earlier selection.
func (uc *BatchEditor) Begin(
	ctx context.Context,
	sc session.Context,
	mode session.Mode,
	date string,
) (session.EditorState, error) {

	if mode != session.ModeOpen && mode != session.ModeClose {
		return session.EditorState{}, domain.ErrInvalidMode
	}
	day, err := uc.clock.ParseDate(date)
	if err != nil {
		return session.EditorState{}, domain.ErrInvalidDate
	}

	st := session.EditorState{
		Mode:     mode,
		BarberID: sc.UserID,
		Date:     day.Format(timezone.DateLayout),
		Selected: []string{},
	}
	if err := uc.sessions.Save(ctx, sc.ID, st); err != nil {
		return session.EditorState{}, err
	}
	return st, nil
}

func (uc *BatchEditor) State(ctx context.Context, sc session.Context) (session.EditorState, error) {
	return uc.sessions.Load(ctx, sc.ID)
}

// Toggle selects or deselects one start time. Only closed slots can be
// selected for opening and only open slots for closing.
func (uc *BatchEditor) Toggle(
	ctx context.Context,
	sc session.Context,
	key string,
) (session.EditorState, error) {

	st, err := uc.sessions.Load(ctx, sc.ID)
	if err != nil {
		return st, err
	}
	if !st.Active() || st.BarberID != sc.UserID {
		return st, domain.ErrNoMode
	}

	if !contains(st.Selected, key) {
		ds, err := uc.days.Execute(ctx, st.BarberID, st.Date)
		if err != nil {
			return st, err
		}
		cell, ok := ds.Get(key)
		if !ok || cell.Status != selectable(st.Mode) {
			return st, domain.ErrNotSelectable
		}
	}

	st.Toggle(key)
	if err := uc.sessions.Save(ctx, sc.ID, st); err != nil {
		return st, err
	}
	return st, nil
}

// Cancel leaves the mode without writing anything.
func (uc *BatchEditor) Cancel(ctx context.Context, sc session.Context) error {
	return uc.sessions.Clear(ctx, sc.ID)
}

// Confirm applies the selection. With nothing selected it fails and the
// mode stays as it was.
func (uc *BatchEditor) Confirm(ctx context.Context, sc session.Context) (*ConfirmResult, error) {
	st, err := uc.sessions.Load(ctx, sc.ID)
	if err != nil {
		return nil, err
	}
	if !st.Active() || st.BarberID != sc.UserID {
		return nil, domain.ErrNoMode
	}
	if len(st.Selected) == 0 {
		return nil, domain.ErrNoSelection
	}

	var res *ConfirmResult
	switch st.Mode {
	case session.ModeOpen:
		res, err = uc.Open(ctx, st.BarberID, st.Date, st.Selected)
	default:
		res, err = uc.Close(ctx, st.BarberID, st.Date, st.Selected)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.Clear(ctx, sc.ID); err != nil {
		uc.log.Warn("clear editor state", slog.String("session_id", sc.ID), slog.Any("err", err))
	}
	return res, nil
}

// ======================================================
// WRITES
// ======================================================

// Open publishes the given start times of date. It writes all of them
// or none.
func (uc *BatchEditor) Open(
	ctx context.Context,
	barberID string,
	date string,
	keys []string,
) (*ConfirmResult, error) {

	ctx, span := observability.Tracer().Start(ctx, "slots.open")
	defer span.End()
	span.SetAttributes(attribute.String("barber.id", barberID), attribute.Int("slots", len(keys)))

	starts, day, err := uc.parseKeys(date, keys)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	for _, s := range starts {
		if s.Before(now) {
			return nil, domain.ErrPastSlot
		}
	}

	barber, err := uc.catalog.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.OpenSlot, 0, len(starts))
	for _, s := range starts {
		rows = append(rows, models.OpenSlot{
			ID:          uuid.NewString(),
			BarberID:    barberID,
			BarberEmail: barber.Email,
			StartTime:   s,
			EndTime:     uc.policy.EndFor(s),
		})
	}

	if err := uc.store.InsertOpen(ctx, rows...); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := uc.catalog.SetPendingNotification(ctx, barberID, true); err != nil {
		uc.log.Warn("flag pending notification", slog.String("barber_id", barberID), slog.Any("err", err))
	}

	applied := keysOf(starts)
	uc.audit.Dispatch(audit.Event{
		BarberID: barberID,
		ActorID:  barberID,
		Action:   audit.ActionSlotsOpened,
		Entity:   "open_slot",
		Metadata: map[string]any{"date": day, "starts": applied},
	})

	return &ConfirmResult{Mode: session.ModeOpen, Date: day, Applied: applied}, nil
}

// Close unpublishes the given start times of date. Times that are no
// longer open, for example because they were booked meanwhile, are
// reported as skipped.
func (uc *BatchEditor) Close(
	ctx context.Context,
	barberID string,
	date string,
	keys []string,
) (*ConfirmResult, error) {

	ctx, span := observability.Tracer().Start(ctx, "slots.close")
	defer span.End()
	span.SetAttributes(attribute.String("barber.id", barberID), attribute.Int("slots", len(keys)))

	starts, day, err := uc.parseKeys(date, keys)
	if err != nil {
		return nil, err
	}

	res := &ConfirmResult{Mode: session.ModeClose, Date: day, Applied: []string{}}
	for _, s := range starts {
		ok, err := uc.store.DeleteOpenAt(ctx, barberID, s)
		if err != nil {
			return nil, err
		}
		if ok {
			res.Applied = append(res.Applied, domain.Key(s))
		} else {
			res.Skipped = append(res.Skipped, domain.Key(s))
		}
	}

	if len(res.Applied) > 0 {
		uc.audit.Dispatch(audit.Event{
			BarberID: barberID,
			ActorID:  barberID,
			Action:   audit.ActionSlotsClosed,
			Entity:   "open_slot",
			Metadata: map[string]any{"date": day, "starts": res.Applied},
		})
	}
	return res, nil
}

// NotifyFollowers tells the barber's followers about newly opened
// slots. Delivery is best effort.
func (uc *BatchEditor) NotifyFollowers(
	ctx context.Context,
	barberID string,
	date string,
	keys []string,
) (notify.Result, error) {
	return uc.notifier.Notify(ctx, barberID, date, keys)
}

// ======================================================
// HELPERS
// ======================================================

// parseKeys turns selection keys into sorted, de-duplicated start times
// that all sit on the slot grid of date.
func (uc *BatchEditor) parseKeys(date string, keys []string) ([]time.Time, string, error) {
	if len(keys) == 0 {
		return nil, "", domain.ErrNoSelection
	}

	day, err := uc.clock.ParseDate(date)
	if err != nil {
		return nil, "", domain.ErrInvalidDate
	}

	grid := map[int64]bool{}
	for _, w := range uc.policy.Generate(day, "") {
		grid[w.Start.Unix()] = true
	}

	seen := map[int64]bool{}
	starts := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		t, err := uc.clock.ParseDateTime(k)
		if err != nil || !grid[t.Unix()] {
			return nil, "", domain.ErrNotSelectable
		}
		if seen[t.Unix()] {
			continue
		}
		seen[t.Unix()] = true
		starts = append(starts, t)
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts, day.Format(timezone.DateLayout), nil
}

func selectable(m session.Mode) domain.Status {
	if m == session.ModeOpen {
		return domain.StatusClosed
	}
	return domain.StatusOpen
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func keysOf(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, domain.Key(t))
	}
	return out
}
