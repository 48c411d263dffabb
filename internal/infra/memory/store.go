// Package memory keeps every record in process. It backs the dev
// profile (STORE_DRIVER=memory) and the use-case tests, with the same
// atomicity the postgres store gives.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type Store struct {
	mu sync.Mutex

	open   map[string]models.OpenSlot
	booked map[string]models.BookedSlot

	barbers      map[string]models.Barber
	services     map[string]models.Service
	descriptions map[string]models.Description
	followers    map[string]map[string]models.Follower
	ratings      map[string]models.Rating
}

var (
	_ slot.Store         = (*Store)(nil)
	_ catalog.Repository = (*Store)(nil)
)

func New() *Store {
	return &Store{
		open:         map[string]models.OpenSlot{},
		booked:       map[string]models.BookedSlot{},
		barbers:      map[string]models.Barber{},
		services:     map[string]models.Service{},
		descriptions: map[string]models.Description{},
		followers:    map[string]map[string]models.Follower{},
		ratings:      map[string]models.Rating{},
	}
}

// ======================================================
// OPEN SLOTS
// ======================================================

func (s *Store) InsertOpen(ctx context.Context, slots ...models.OpenSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	for _, o := range slots {
		k := o.BarberID + "|" + o.StartTime.UTC().String()
		if seen[k] || s.occupiedLocked(o.BarberID, o.StartTime) {
			return slot.ErrSlotOccupied
		}
		if _, ok := s.open[o.ID]; ok {
			return slot.ErrSlotOccupied
		}
		seen[k] = true
	}

	now := time.Now()
	for _, o := range slots {
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now
		}
		s.open[o.ID] = o
	}
	return nil
}

func (s *Store) occupiedLocked(barberID string, start time.Time) bool {
	for _, o := range s.open {
		if o.BarberID == barberID && o.StartTime.Equal(start) {
			return true
		}
	}
	for _, b := range s.booked {
		if b.BarberID == barberID && b.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

func (s *Store) DeleteOpen(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.open[id]; !ok {
		return false, nil
	}
	delete(s.open, id)
	return true, nil
}

func (s *Store) DeleteOpenAt(ctx context.Context, barberID string, start time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, o := range s.open {
		if o.BarberID == barberID && o.StartTime.Equal(start) {
			delete(s.open, id)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetOpen(ctx context.Context, id string) (*models.OpenSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.open[id]
	if !ok {
		return nil, slot.ErrSlotNotFound
	}
	return &o, nil
}

func (s *Store) QueryOpen(ctx context.Context, q slot.OpenQuery) ([]models.OpenSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.OpenSlot{}
	for _, o := range s.open {
		if o.BarberID != q.BarberID || !inRange(o.StartTime, q.From, q.To) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// ======================================================
// BOOKED SLOTS
// ======================================================

func (s *Store) GetBooked(ctx context.Context, id string) (*models.BookedSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.booked[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	b = cloneBooked(b)
	return &b, nil
}

func (s *Store) QueryBooked(ctx context.Context, q slot.BookedQuery) ([]models.BookedSlot, error) {
	if q.BarberID == "" && q.CustomerID == "" {
		return nil, httperr.Validation("unscoped_query")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.BookedSlot{}
	for _, b := range s.booked {
		if q.BarberID != "" && b.BarberID != q.BarberID {
			continue
		}
		if q.CustomerID != "" && b.Customer.ID != q.CustomerID {
			continue
		}
		if !inRange(b.StartTime, q.From, q.To) {
			continue
		}
		if q.Completed != nil && b.Completed != *q.Completed {
			continue
		}
		if q.NoShow != nil && b.NoShow != *q.NoShow {
			continue
		}
		out = append(out, cloneBooked(b))
	}

	sort.Slice(out, func(i, j int) bool {
		if q.Desc {
			return out[i].StartTime.After(out[j].StartTime)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (s *Store) SetOutcome(ctx context.Context, id string, completed, noShow bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.booked[id]
	if !ok {
		return false, booking.ErrBookingNotFound
	}
	if b.Completed || b.NoShow {
		return false, nil
	}
	b.Completed, b.NoShow = completed, noShow
	b.UpdatedAt = time.Now()
	s.booked[id] = b
	return true, nil
}

func (s *Store) SaveFeedback(ctx context.Context, id string, fb slot.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.booked[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if fb.Rating != nil {
		b.Rating = fb.Rating
	}
	if fb.Review != nil {
		b.Review = fb.Review
	}
	b.UpdatedAt = time.Now()
	s.booked[id] = b

	s.ratings[id] = models.Rating{
		BookingID:    id,
		BarberID:     b.BarberID,
		Rating:       b.Rating,
		Review:       b.Review,
		ReviewerName: fb.ReviewerName,
		UpdatedAt:    b.UpdatedAt,
	}
	return nil
}

// ======================================================
// TRANSITIONS
// ======================================================

func (s *Store) ConvertOpenToBooked(ctx context.Context, openID string, b *models.BookedSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.open[openID]; !ok {
		return slot.ErrSlotTaken
	}
	if _, ok := s.booked[b.ID]; ok {
		return slot.ErrSlotTaken
	}
	for _, other := range s.booked {
		if other.BarberID == b.BarberID && other.StartTime.Equal(b.StartTime) {
			return slot.ErrSlotTaken
		}
	}

	delete(s.open, openID)

	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now
	s.booked[b.ID] = cloneBooked(*b)
	return nil
}

func (s *Store) ConvertBookedToOpen(ctx context.Context, bookingID, customerID string, o *models.OpenSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.booked[bookingID]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if b.Customer.ID != customerID {
		return booking.ErrNotOwner
	}
	if b.Completed || b.NoShow {
		return booking.ErrInvalidState
	}
	for _, other := range s.open {
		if other.BarberID == o.BarberID && other.StartTime.Equal(o.StartTime) {
			return slot.ErrSlotOccupied
		}
	}

	delete(s.booked, bookingID)
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	s.open[o.ID] = *o
	return nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

func cloneBooked(b models.BookedSlot) models.BookedSlot {
	b.ServiceIDs = append([]string(nil), b.ServiceIDs...)
	b.ServiceNames = append([]string(nil), b.ServiceNames...)
	return b
}
