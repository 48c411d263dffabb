package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/infra/memory"
	"github.com/BruksfildServices01/barber-slots/internal/logs"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/session"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

const tz = "Asia/Singapore"

type fixture struct {
	store *memory.Store
	clock *timezone.Clock
	audit *audit.Dispatcher
	open  models.OpenSlot

	haircut string
	beard   string
}

// newFixture seeds one barber with two services and one open slot at
// 2025-06-01 10:00, seen from 2025-05-31 12:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	loc := timezone.Location(tz)
	clock := timezone.FixedClock(tz, time.Date(2025, 5, 31, 12, 0, 0, 0, loc))
	store := memory.New()
	log := logs.Discard()

	if err := store.UpsertBarber(ctx, &models.Barber{ID: "barber-1", Name: "Sam", Email: "sam@example.com"}); err != nil {
		t.Fatalf("seed barber: %v", err)
	}
	for _, s := range []models.Service{
		{ID: "svc-hair", BarberID: "barber-1", Name: "Haircut", PriceCents: 1250},
		{ID: "svc-beard", BarberID: "barber-1", Name: "Beard Trim", PriceCents: 800},
		{ID: "svc-other", BarberID: "barber-2", Name: "Shave", PriceCents: 500},
	} {
		if err := store.CreateService(ctx, &s); err != nil {
			t.Fatalf("seed service: %v", err)
		}
	}

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)
	open := models.OpenSlot{
		ID:          "slot-1",
		BarberID:    "barber-1",
		BarberEmail: "sam@example.com",
		StartTime:   start,
		EndTime:     start.Add(50 * time.Minute),
	}
	if err := store.InsertOpen(ctx, open); err != nil {
		t.Fatalf("seed open slot: %v", err)
	}

	d := audit.NewDispatcher(audit.New(nil, log), log)
	t.Cleanup(d.Close)

	return &fixture{store: store, clock: clock, audit: d, open: open, haircut: "svc-hair", beard: "svc-beard"}
}

func (f *fixture) create() *CreateBooking {
	return NewCreateBooking(f.store, f.store, f.clock, "SG", f.audit, logs.Discard())
}

func (f *fixture) at(t time.Time) *timezone.Clock {
	return timezone.FixedClock(tz, t)
}

func customer(id string) models.Customer {
	return models.Customer{ID: id, DisplayName: "Alex " + id, Phone: "9123 4567"}
}

func (f *fixture) book(t *testing.T, customerID string) {
	t.Helper()
	_, err := f.create().Execute(context.Background(), CreateBookingInput{
		OpenSlotID: f.open.ID,
		ServiceIDs: []string{f.haircut},
		Customer:   customer(customerID),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
}

func TestCreateBookingAggregatesPrice(t *testing.T) {
	f := newFixture(t)

	sum, err := f.create().Execute(context.Background(), CreateBookingInput{
		OpenSlotID: f.open.ID,
		ServiceIDs: []string{f.haircut, f.beard},
		Customer:   customer("c1"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sum.Total != "20.50" || sum.TotalCents != 2050 {
		t.Fatalf("expected 20.50, got %s (%d)", sum.Total, sum.TotalCents)
	}
	if sum.Services != "Haircut, Beard Trim" {
		t.Fatalf("unexpected services: %q", sum.Services)
	}
	if sum.ID != f.open.ID {
		t.Fatalf("booking id should reuse the slot id, got %s", sum.ID)
	}
	if sum.Date != "Sun 01/06/2025" || sum.Time != "10:00 AM" {
		t.Fatalf("unexpected date/time: %s %s", sum.Date, sum.Time)
	}

	b, err := f.store.GetBooked(context.Background(), sum.ID)
	if err != nil {
		t.Fatalf("booking not stored: %v", err)
	}
	if b.Customer.Phone != "+6591234567" {
		t.Fatalf("phone not normalized: %s", b.Customer.Phone)
	}
	if b.BarberName != "Sam" || b.Completed || b.NoShow {
		t.Fatalf("unexpected booking: %+v", b)
	}
	if _, err := f.store.GetOpen(context.Background(), f.open.ID); err == nil {
		t.Fatalf("open slot should be gone")
	}
}

func TestConcurrentBookingHasOneWinner(t *testing.T) {
	f := newFixture(t)
	uc := f.create()

	const bookers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)

	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), CreateBookingInput{
				OpenSlotID: f.open.ID,
				ServiceIDs: []string{f.haircut},
				Customer:   models.Customer{ID: string(rune('a' + i))},
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case httperr.KindOf(err) == httperr.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 || conflicts != bookers-1 {
		t.Fatalf("expected 1 win and %d conflicts, got %d and %d", bookers-1, wins, conflicts)
	}
}

func TestCreateBookingFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create().Execute(ctx, CreateBookingInput{
		OpenSlotID: f.open.ID,
		ServiceIDs: []string{f.haircut, "svc-gone"},
		Customer:   customer("c1"),
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
	if err.Error() != "service_not_found: svc-gone" {
		t.Fatalf("expected the missing service to be named, got %q", err.Error())
	}
	if _, err := f.store.GetOpen(ctx, f.open.ID); err != nil {
		t.Fatalf("failed booking must not touch the slot: %v", err)
	}

	_, err = f.create().Execute(ctx, CreateBookingInput{
		OpenSlotID: f.open.ID,
		ServiceIDs: []string{"svc-other"},
		Customer:   customer("c1"),
	})
	if !httperr.IsBusiness(err, "service_not_offered") {
		t.Fatalf("expected service_not_offered, got %v", err)
	}

	_, err = f.create().Execute(ctx, CreateBookingInput{
		OpenSlotID: f.open.ID,
		Customer:   customer("c1"),
	})
	if !httperr.IsBusiness(err, "no_services_selected") {
		t.Fatalf("expected no_services_selected, got %v", err)
	}

	_, err = f.create().Execute(ctx, CreateBookingInput{
		OpenSlotID: "missing",
		ServiceIDs: []string{f.haircut},
		Customer:   customer("c1"),
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("expected slot_taken, got %v", err)
	}

	late := NewCreateBooking(f.store, f.store, f.at(f.open.StartTime.Add(time.Minute)), "SG", f.audit, logs.Discard())
	_, err = late.Execute(ctx, CreateBookingInput{
		OpenSlotID: f.open.ID,
		ServiceIDs: []string{f.haircut},
		Customer:   customer("c1"),
	})
	if !httperr.IsBusiness(err, "slot_expired") {
		t.Fatalf("expected slot_expired, got %v", err)
	}
}

func TestCancelRestoresOpenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	open, err := NewCancelBooking(f.store, f.clock, f.audit).Execute(ctx, f.open.ID, "c1")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := f.store.GetBooked(ctx, f.open.ID); !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("booking should be gone, got %v", err)
	}

	got, err := f.store.QueryOpen(ctx, slot.OpenQuery{BarberID: "barber-1"})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one open slot, got %v, %v", got, err)
	}
	if !got[0].StartTime.Equal(f.open.StartTime) || got[0].BarberID != f.open.BarberID {
		t.Fatalf("restored slot differs: %+v", got[0])
	}
	if open.ID != f.open.ID {
		t.Fatalf("expected slot id %s, got %s", f.open.ID, open.ID)
	}
}

func TestCancelByAnotherCustomerIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	_, err := NewCancelBooking(f.store, f.clock, f.audit).Execute(ctx, f.open.ID, "intruder")
	if httperr.KindOf(err) != httperr.KindPermission {
		t.Fatalf("expected permission error, got %v", err)
	}

	b, err := f.store.GetBooked(ctx, f.open.ID)
	if err != nil {
		t.Fatalf("booking should remain: %v", err)
	}
	if b.Customer.ID != "c1" || b.Completed || b.NoShow {
		t.Fatalf("booking changed: %+v", b)
	}
}

func TestCancelAfterStartIsRejected(t *testing.T) {
	f := newFixture(t)
	f.book(t, "c1")

	late := f.at(f.open.StartTime.Add(10 * time.Minute))
	_, err := NewCancelBooking(f.store, late, f.audit).Execute(context.Background(), f.open.ID, "c1")
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestSetStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	early := NewSetBookingStatus(f.store, f.clock, f.audit)
	if _, err := early.Execute(ctx, "barber-1", f.open.ID, domain.StatusCompleted); !httperr.IsBusiness(err, "appointment_not_started") {
		t.Fatalf("expected appointment_not_started, got %v", err)
	}

	uc := NewSetBookingStatus(f.store, f.at(f.open.StartTime.Add(time.Hour)), f.audit)

	if _, err := uc.Execute(ctx, "barber-2", f.open.ID, domain.StatusCompleted); httperr.KindOf(err) != httperr.KindPermission {
		t.Fatalf("expected permission error, got %v", err)
	}

	b, err := uc.Execute(ctx, "barber-1", f.open.ID, domain.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !b.Completed || b.NoShow {
		t.Fatalf("unexpected flags: %+v", b)
	}

	if _, err := uc.Execute(ctx, "barber-1", f.open.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("repeating completed should succeed: %v", err)
	}
	if _, err := uc.Execute(ctx, "barber-1", f.open.ID, domain.StatusNoShow); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	stored, _ := f.store.GetBooked(ctx, f.open.ID)
	if stored.Completed && stored.NoShow {
		t.Fatalf("both flags set")
	}
}

func TestFeedbackRequiresCompletion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	later := f.at(f.open.StartTime.Add(time.Hour))
	fb := NewFeedback(f.store, later)

	if err := fb.Rate(ctx, "c1", f.open.ID, 5); !httperr.IsBusiness(err, "booking_not_completed") {
		t.Fatalf("expected booking_not_completed, got %v", err)
	}

	if _, err := NewSetBookingStatus(f.store, later, f.audit).Execute(ctx, "barber-1", f.open.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := fb.Rate(ctx, "c1", f.open.ID, 6); !httperr.IsBusiness(err, "invalid_rating") {
		t.Fatalf("expected invalid_rating, got %v", err)
	}
	if err := fb.Rate(ctx, "c2", f.open.ID, 4); httperr.KindOf(err) != httperr.KindPermission {
		t.Fatalf("expected permission error, got %v", err)
	}
	if err := fb.Rate(ctx, "c1", f.open.ID, 4); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if err := fb.Review(ctx, "c1", f.open.ID, "  Sharp fade  "); err != nil {
		t.Fatalf("review: %v", err)
	}

	rows, _ := f.store.ListRatings(ctx, "barber-1")
	if len(rows) != 1 {
		t.Fatalf("expected one mirrored rating, got %d", len(rows))
	}
	r := rows[0]
	if r.Rating == nil || *r.Rating != 4 || r.Review == nil || *r.Review != "Sharp fade" {
		t.Fatalf("unexpected mirror: %+v", r)
	}
	if r.ReviewerName != "Alex c1" {
		t.Fatalf("unexpected reviewer: %s", r.ReviewerName)
	}
}

func TestLongReviewIsCutOnCharacterBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	later := f.at(f.open.StartTime.Add(time.Hour))
	if _, err := NewSetBookingStatus(f.store, later, f.audit).Execute(ctx, "barber-1", f.open.ID, domain.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// one ASCII byte first so a byte cut would land inside a two-byte rune
	text := "a" + strings.Repeat("é", 1200)
	if err := NewFeedback(f.store, later).Review(ctx, "c1", f.open.ID, text); err != nil {
		t.Fatalf("review: %v", err)
	}

	b, err := f.store.GetBooked(ctx, f.open.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Review == nil || !utf8.ValidString(*b.Review) {
		t.Fatalf("stored review is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(*b.Review); n != maxReviewLen {
		t.Fatalf("expected %d characters, got %d", maxReviewLen, n)
	}
	if !strings.HasPrefix(*b.Review, "aé") {
		t.Fatalf("unexpected start: %q", (*b.Review)[:4])
	}
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "c1")

	lists := NewListBookings(f.store, f.clock)

	up, err := lists.Upcoming(ctx, "c1")
	if err != nil || len(up) != 1 || up[0].Status != domain.StatusUpcoming {
		t.Fatalf("upcoming: %v %v", up, err)
	}
	if pending, _ := lists.Pending(ctx, "barber-1"); len(pending) != 0 {
		t.Fatalf("nothing should be pending yet: %v", pending)
	}

	later := NewListBookings(f.store, f.at(f.open.StartTime.Add(5*time.Minute)))
	pending, err := later.Pending(ctx, "barber-1")
	if err != nil || len(pending) != 1 || pending[0].Status != domain.StatusPending {
		t.Fatalf("pending: %v %v", pending, err)
	}
	if up, _ := later.Upcoming(ctx, "c1"); len(up) != 0 {
		t.Fatalf("started booking is not upcoming: %v", up)
	}

	if _, err := NewSetBookingStatus(f.store, f.at(f.open.StartTime.Add(time.Hour)), f.audit).
		Execute(ctx, "barber-1", f.open.ID, domain.StatusNoShow); err != nil {
		t.Fatalf("no-show: %v", err)
	}

	past, err := later.Past(ctx, "c1", time.Time{})
	if err != nil || len(past) != 1 || past[0].Status != domain.StatusNoShow {
		t.Fatalf("past: %v %v", past, err)
	}
	if ns, _ := later.NoShow(ctx, "barber-1"); len(ns) != 1 {
		t.Fatalf("barber no-show list: %v", ns)
	}
	if done, _ := later.CustomerCompleted(ctx, "c1"); len(done) != 0 {
		t.Fatalf("nothing completed: %v", done)
	}

	if _, err := lists.Get(ctx, session.Context{UserID: "stranger"}, f.open.ID); !httperr.IsBusiness(err, "booking_not_found") {
		t.Fatalf("strangers should not see the booking, got %v", err)
	}
	if got, err := lists.Get(ctx, session.Context{UserID: "barber-1"}, f.open.ID); err != nil || got.ID != f.open.ID {
		t.Fatalf("barber should see the booking: %v %v", got, err)
	}
}
