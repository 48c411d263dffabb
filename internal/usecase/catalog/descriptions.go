package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// Descriptions manages a barber's bios; at most one is active.
type Descriptions struct {
	repo domain.Repository
}

func NewDescriptions(repo domain.Repository) *Descriptions {
	return &Descriptions{repo: repo}
}

func (uc *Descriptions) List(ctx context.Context, barberID string) ([]models.Description, error) {
	return uc.repo.ListDescriptions(ctx, barberID)
}

func (uc *Descriptions) Add(ctx context.Context, barberID, text string) (*models.Description, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyDescription
	}

	d := &models.Description{
		ID:       uuid.NewString(),
		BarberID: barberID,
		Text:     text,
	}
	if err := uc.repo.CreateDescription(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (uc *Descriptions) Activate(ctx context.Context, barberID, id string) error {
	d, err := uc.repo.GetDescription(ctx, id)
	if err != nil {
		return err
	}
	if d.BarberID != barberID {
		return domain.ErrDescriptionNotFound
	}
	return uc.repo.SetActiveDescription(ctx, barberID, &d.ID)
}

// Delete removes a bio and clears it as active when it was.
func (uc *Descriptions) Delete(ctx context.Context, barberID, id string) error {
	return uc.repo.DeleteDescription(ctx, barberID, id)
}
