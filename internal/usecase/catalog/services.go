package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type ServiceInput struct {
	Name        string
	Price       string
	Description string
}

// Services is the barber's price list. Bookings copy name and price, so
// edits here never touch existing bookings.
type Services struct {
	repo domain.Repository
}

func NewServices(repo domain.Repository) *Services {
	return &Services{repo: repo}
}

func (uc *Services) List(ctx context.Context, barberID string) ([]models.Service, error) {
	return uc.repo.ListServices(ctx, barberID)
}

func (uc *Services) Create(ctx context.Context, barberID string, in ServiceInput) (*models.Service, error) {
	svc, err := buildService(barberID, in)
	if err != nil {
		return nil, err
	}
	svc.ID = uuid.NewString()

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (uc *Services) Update(ctx context.Context, barberID, id string, in ServiceInput) (*models.Service, error) {
	svc, err := buildService(barberID, in)
	if err != nil {
		return nil, err
	}
	svc.ID = id

	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return uc.repo.GetService(ctx, id)
}

func (uc *Services) Delete(ctx context.Context, barberID, id string) error {
	return uc.repo.DeleteService(ctx, barberID, id)
}

func buildService(barberID string, in ServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	cents, err := booking.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	return &models.Service{
		BarberID:    barberID,
		Name:        name,
		PriceCents:  cents,
		Description: strings.TrimSpace(in.Description),
	}, nil
}
