package slot

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

func TestComputeDayStatus(t *testing.T) {
	loc := sgt(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 1, 11, 30, 0, 0, loc)

	windows := DefaultPolicy().Generate(day, "b1")
	at := func(h int) time.Time { return time.Date(2025, 6, 1, h, 0, 0, 0, loc) }

	open := []models.OpenSlot{
		{ID: "o-stale", BarberID: "b1", StartTime: at(9)},
		{ID: "o-13", BarberID: "b1", StartTime: at(13)},
	}
	booked := []models.BookedSlot{
		{ID: "b-10", BarberID: "b1", StartTime: at(10), Completed: true},
		{ID: "b-11", BarberID: "b1", StartTime: at(11)},
		{ID: "b-14", BarberID: "b1", StartTime: at(14)},
		{ID: "b-15", BarberID: "b1", StartTime: at(15).Add(-time.Hour * 24)},
	}

	got := ComputeDayStatus(windows, open, booked, now).Statuses()

	want := map[string]Status{
		"2025-06-01 09:00": StatusPast,
		"2025-06-01 10:00": StatusCompleted,
		"2025-06-01 11:00": StatusPending,
		"2025-06-01 12:00": StatusClosed,
		"2025-06-01 13:00": StatusOpen,
		"2025-06-01 14:00": StatusBooked,
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %s, got %s", k, v, got[k])
		}
	}
}

func TestBookedWinsOverStaleOpen(t *testing.T) {
	loc := sgt(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	now := time.Date(2025, 5, 31, 12, 0, 0, 0, loc)
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)

	open := []models.OpenSlot{{ID: "x", BarberID: "b1", StartTime: start}}
	booked := []models.BookedSlot{{ID: "x", BarberID: "b1", StartTime: start.UTC()}}

	ds := ComputeDayStatus(DefaultPolicy().Generate(day, "b1"), open, booked, now)

	st, ok := ds.Get("2025-06-01 10:00")
	if !ok {
		t.Fatalf("slot missing from day view")
	}
	if st.Status != StatusBooked {
		t.Fatalf("expected booked, got %s", st.Status)
	}
	if len(ds.Inconsistent) != 1 || ds.Inconsistent[0] != "2025-06-01 10:00" {
		t.Fatalf("expected the race to be reported, got %v", ds.Inconsistent)
	}
}

func TestVisibleHidesPast(t *testing.T) {
	loc := sgt(t)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, loc)

	ds := ComputeDayStatus(DefaultPolicy().Generate(day, "b1"), nil, nil, now)

	for _, s := range ds.Visible() {
		if s.Start.Before(now) {
			t.Fatalf("past slot %s should be hidden", s.Key)
		}
	}
	if len(ds.Visible()) != len(ds.Slots)-4 {
		t.Fatalf("expected 4 hidden slots, got %d visible of %d", len(ds.Visible()), len(ds.Slots))
	}
}
