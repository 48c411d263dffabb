package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (s *Store) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.barbers[id]
	if !ok {
		return nil, catalog.ErrBarberNotFound
	}
	return &b, nil
}

func (s *Store) UpsertBarber(ctx context.Context, b *models.Barber) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.barbers[b.ID]; ok {
		b.CreatedAt = prev.CreatedAt
		if b.ActiveDescriptionID == nil {
			b.ActiveDescriptionID = prev.ActiveDescriptionID
		}
		b.PendingNotification = prev.PendingNotification
	} else {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	s.barbers[b.ID] = *b
	return nil
}

func (s *Store) ListBarberIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.barbers))
	for id := range s.barbers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) SetActiveDescription(ctx context.Context, barberID string, descriptionID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.barbers[barberID]
	if !ok {
		return catalog.ErrBarberNotFound
	}
	b.ActiveDescriptionID = descriptionID
	s.barbers[barberID] = b
	return nil
}

func (s *Store) SetPendingNotification(ctx context.Context, barberID string, pending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.barbers[barberID]
	if !ok {
		return catalog.ErrBarberNotFound
	}
	b.PendingNotification = pending
	s.barbers[barberID] = b
	return nil
}

func (s *Store) ListPendingNotification(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := []string{}
	for id, b := range s.barbers {
		if b.PendingNotification {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (s *Store) GetService(ctx context.Context, id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) ListServices(ctx context.Context, barberID string) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.BarberID == barberID {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) UpdateService(ctx context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.services[svc.ID]
	if !ok || prev.BarberID != svc.BarberID {
		return catalog.ErrServiceNotFound
	}
	svc.CreatedAt = prev.CreatedAt
	svc.UpdatedAt = time.Now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) DeleteService(ctx context.Context, barberID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.services[id]
	if !ok || prev.BarberID != barberID {
		return catalog.ErrServiceNotFound
	}
	delete(s.services, id)
	return nil
}

// --------------------------------------------------
// Description
// --------------------------------------------------

func (s *Store) GetDescription(ctx context.Context, id string) (*models.Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.descriptions[id]
	if !ok {
		return nil, catalog.ErrDescriptionNotFound
	}
	return &d, nil
}

func (s *Store) ListDescriptions(ctx context.Context, barberID string) ([]models.Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Description{}
	for _, d := range s.descriptions {
		if d.BarberID == barberID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateDescription(ctx context.Context, d *models.Description) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.CreatedAt = time.Now()
	s.descriptions[d.ID] = *d
	return nil
}

func (s *Store) DeleteDescription(ctx context.Context, barberID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.descriptions[id]
	if !ok || d.BarberID != barberID {
		return catalog.ErrDescriptionNotFound
	}
	delete(s.descriptions, id)

	if b, ok := s.barbers[barberID]; ok && b.ActiveDescriptionID != nil && *b.ActiveDescriptionID == id {
		b.ActiveDescriptionID = nil
		s.barbers[barberID] = b
	}
	return nil
}

// --------------------------------------------------
// Follower
// --------------------------------------------------

func (s *Store) AddFollower(ctx context.Context, f *models.Follower) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, ok := s.followers[f.BarberID]
	if !ok {
		subs = map[string]models.Follower{}
		s.followers[f.BarberID] = subs
	}
	if prev, ok := subs[f.CustomerID]; ok {
		f.CreatedAt = prev.CreatedAt
	} else {
		f.CreatedAt = time.Now()
	}
	subs[f.CustomerID] = *f
	return nil
}

func (s *Store) RemoveFollower(ctx context.Context, barberID, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.followers[barberID], customerID)
	return nil
}

func (s *Store) IsFollowing(ctx context.Context, barberID, customerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.followers[barberID][customerID]
	return ok, nil
}

func (s *Store) ListFollowers(ctx context.Context, barberID string) ([]models.Follower, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Follower{}
	for _, f := range s.followers[barberID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out, nil
}

func (s *Store) ListFollowing(ctx context.Context, customerID string) ([]models.Follower, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Follower{}
	for _, subs := range s.followers {
		if f, ok := subs[customerID]; ok {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BarberID < out[j].BarberID })
	return out, nil
}

// --------------------------------------------------
// Rating
// --------------------------------------------------

func (s *Store) ListRatings(ctx context.Context, barberID string) ([]models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Rating{}
	for _, r := range s.ratings {
		if r.BarberID == barberID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
