package catalog

import (
	"context"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type Repository interface {
	// -------- Barber --------
	GetBarber(ctx context.Context, id string) (*models.Barber, error)
	UpsertBarber(ctx context.Context, b *models.Barber) error
	ListBarberIDs(ctx context.Context) ([]string, error)
	SetActiveDescription(ctx context.Context, barberID string, descriptionID *string) error

	// SetPendingNotification marks (or clears) a barber whose followers
	// have not yet heard about newly opened slots.
	SetPendingNotification(ctx context.Context, barberID string, pending bool) error
	ListPendingNotification(ctx context.Context) ([]string, error)

	// -------- Service --------
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, barberID string) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, barberID, id string) error

	// -------- Description --------
	GetDescription(ctx context.Context, id string) (*models.Description, error)
	ListDescriptions(ctx context.Context, barberID string) ([]models.Description, error)
	CreateDescription(ctx context.Context, d *models.Description) error
	DeleteDescription(ctx context.Context, barberID, id string) error

	// -------- Follower --------
	AddFollower(ctx context.Context, f *models.Follower) error
	RemoveFollower(ctx context.Context, barberID, customerID string) error
	IsFollowing(ctx context.Context, barberID, customerID string) (bool, error)
	ListFollowers(ctx context.Context, barberID string) ([]models.Follower, error)
	ListFollowing(ctx context.Context, customerID string) ([]models.Follower, error)

	// -------- Rating --------
	ListRatings(ctx context.Context, barberID string) ([]models.Rating, error)
}
