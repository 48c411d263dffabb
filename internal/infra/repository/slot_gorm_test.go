package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-slots/internal/config"
	"github.com/BruksfildServices01/barber-slots/internal/db"
	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// newPostgresStore connects to TEST_DATABASE_URL and gives each test its
// own barber so runs never collide.
func newPostgresStore(t *testing.T) (*SlotGormRepository, string) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gdb, err := db.NewDB(&config.Config{DBUrl: url})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	barberID := "test-" + uuid.NewString()
	t.Cleanup(func() {
		gdb.Where("barber_id = ?", barberID).Delete(&models.OpenSlot{})
		gdb.Where("barber_id = ?", barberID).Delete(&models.BookedSlot{})
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewSlotGormRepository(gdb), barberID
}

func openAt(barberID string, start time.Time) models.OpenSlot {
	return models.OpenSlot{
		ID:        uuid.NewString(),
		BarberID:  barberID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}
}

func bookingFor(o models.OpenSlot, customerID string) *models.BookedSlot {
	return &models.BookedSlot{
		ID:        o.ID,
		BarberID:  o.BarberID,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Customer:  models.Customer{ID: customerID, DisplayName: customerID},
	}
}

func TestPostgresConcurrentBookingHasOneWinner(t *testing.T) {
	store, barberID := newPostgresStore(t)
	ctx := context.Background()

	o := openAt(barberID, time.Now().UTC().Add(48*time.Hour).Truncate(time.Minute))
	if err := store.InsertOpen(ctx, o); err != nil {
		t.Fatalf("insert: %v", err)
	}

	const racers = 8
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = store.ConvertOpenToBooked(ctx, o.ID, bookingFor(o, uuid.NewString()))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, slot.ErrSlotTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}

	if _, err := store.GetOpen(ctx, o.ID); !errors.Is(err, slot.ErrSlotNotFound) {
		t.Fatalf("open slot should be gone, got %v", err)
	}
	if _, err := store.GetBooked(ctx, o.ID); err != nil {
		t.Fatalf("booking missing: %v", err)
	}
}

func TestPostgresCancelRestoresOpenSlot(t *testing.T) {
	store, barberID := newPostgresStore(t)
	ctx := context.Background()

	o := openAt(barberID, time.Now().UTC().Add(72*time.Hour).Truncate(time.Minute))
	if err := store.InsertOpen(ctx, o); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.ConvertOpenToBooked(ctx, o.ID, bookingFor(o, "cust-1")); err != nil {
		t.Fatalf("book: %v", err)
	}

	// occupied while booked
	if err := store.InsertOpen(ctx, openAt(barberID, o.StartTime)); !errors.Is(err, slot.ErrSlotOccupied) {
		t.Fatalf("expected slot_occupied, got %v", err)
	}

	reopened := openAt(barberID, o.StartTime)
	if err := store.ConvertBookedToOpen(ctx, o.ID, "someone-else", &reopened); !errors.Is(err, booking.ErrNotOwner) {
		t.Fatalf("expected not_owner, got %v", err)
	}
	if err := store.ConvertBookedToOpen(ctx, o.ID, "cust-1", &reopened); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := store.ConvertBookedToOpen(ctx, o.ID, "cust-1", &reopened); !errors.Is(err, booking.ErrBookingNotFound) {
		t.Fatalf("second cancel: expected booking_not_found, got %v", err)
	}
	if _, err := store.GetOpen(ctx, reopened.ID); err != nil {
		t.Fatalf("reopened slot missing: %v", err)
	}

	// duplicate open at the same start hits the unique index
	if err := store.InsertOpen(ctx, openAt(barberID, o.StartTime)); !errors.Is(err, slot.ErrSlotOccupied) {
		t.Fatalf("expected slot_occupied on duplicate open, got %v", err)
	}
}
