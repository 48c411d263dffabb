package catalog

import (
	"context"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/validators"
)

type Followers struct {
	repo        domain.Repository
	phoneRegion string
}

func NewFollowers(repo domain.Repository, phoneRegion string) *Followers {
	return &Followers{repo: repo, phoneRegion: phoneRegion}
}

func (uc *Followers) Follow(ctx context.Context, barberID string, customer models.Customer) error {
	if barberID == customer.ID {
		return domain.ErrSelfFollow
	}
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return err
	}

	phone := ""
	if customer.Phone != "" {
		p, ok := validators.NormalizePhone(customer.Phone, uc.phoneRegion)
		if !ok {
			return domain.ErrInvalidPhone
		}
		phone = p
	}

	return uc.repo.AddFollower(ctx, &models.Follower{
		BarberID:   barberID,
		CustomerID: customer.ID,
		Username:   customer.DisplayName,
		Phone:      phone,
	})
}

func (uc *Followers) Unfollow(ctx context.Context, barberID, customerID string) error {
	return uc.repo.RemoveFollower(ctx, barberID, customerID)
}

func (uc *Followers) IsFollowing(ctx context.Context, barberID, customerID string) (bool, error) {
	return uc.repo.IsFollowing(ctx, barberID, customerID)
}

func (uc *Followers) Following(ctx context.Context, customerID string) ([]models.Follower, error) {
	return uc.repo.ListFollowing(ctx, customerID)
}

func (uc *Followers) Of(ctx context.Context, barberID string) ([]models.Follower, error) {
	return uc.repo.ListFollowers(ctx, barberID)
}
