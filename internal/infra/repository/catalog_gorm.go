package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id string) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, classify("get_barber", err, catalog.ErrBarberNotFound, nil)
	}
	return &b, nil
}

// UpsertBarber writes the profile fields. The active description and the
// pending-notification flag are only changed through their own setters.
func (r *CatalogGormRepository) UpsertBarber(ctx context.Context, b *models.Barber) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "email", "phone", "address", "postal_code", "region",
			"instagram", "facebook", "website", "portfolio_link",
			"updated_at",
		}),
	}).Create(b).Error
	return classify("upsert_barber", err, nil, nil)
}

func (r *CatalogGormRepository) ListBarberIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, httperr.Storage("list_barber_ids", err)
	}
	return ids, nil
}

func (r *CatalogGormRepository) SetActiveDescription(ctx context.Context, barberID string, descriptionID *string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", barberID).
		Update("active_description_id", descriptionID)
	if res.Error != nil {
		return httperr.Storage("set_active_description", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrBarberNotFound
	}
	return nil
}

func (r *CatalogGormRepository) SetPendingNotification(ctx context.Context, barberID string, pending bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ?", barberID).
		Update("pending_notification", pending)
	if res.Error != nil {
		return httperr.Storage("set_pending_notification", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrBarberNotFound
	}
	return nil
}

func (r *CatalogGormRepository) ListPendingNotification(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("pending_notification = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, httperr.Storage("list_pending_notification", err)
	}
	return ids, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *CatalogGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, classify("get_service", err, catalog.ErrServiceNotFound, nil)
	}
	return &s, nil
}

func (r *CatalogGormRepository) ListServices(ctx context.Context, barberID string) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list_services", err)
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return classify("create_service", r.db.WithContext(ctx).Create(s).Error, nil, nil)
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	res := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ? AND barber_id = ?", s.ID, s.BarberID).
		Updates(map[string]any{
			"name":        s.Name,
			"price_cents": s.PriceCents,
			"description": s.Description,
		})
	if res.Error != nil {
		return httperr.Storage("update_service", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, barberID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.Service{})
	if res.Error != nil {
		return httperr.Storage("delete_service", res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrServiceNotFound
	}
	return nil
}

// --------------------------------------------------
// Description
// --------------------------------------------------

func (r *CatalogGormRepository) GetDescription(ctx context.Context, id string) (*models.Description, error) {
	var d models.Description
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, classify("get_description", err, catalog.ErrDescriptionNotFound, nil)
	}
	return &d, nil
}

func (r *CatalogGormRepository) ListDescriptions(ctx context.Context, barberID string) ([]models.Description, error) {
	var out []models.Description
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list_descriptions", err)
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateDescription(ctx context.Context, d *models.Description) error {
	return classify("create_description", r.db.WithContext(ctx).Create(d).Error, nil, nil)
}

func (r *CatalogGormRepository) DeleteDescription(ctx context.Context, barberID, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND barber_id = ?", id, barberID).Delete(&models.Description{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.ErrDescriptionNotFound
		}
		return tx.Model(&models.Barber{}).
			Where("id = ? AND active_description_id = ?", barberID, id).
			Update("active_description_id", nil).Error
	})
	return classify("delete_description", err, nil, nil)
}

// --------------------------------------------------
// Follower
// --------------------------------------------------

func (r *CatalogGormRepository) AddFollower(ctx context.Context, f *models.Follower) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barber_id"}, {Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "phone"}),
	}).Create(f).Error
	return classify("add_follower", err, nil, nil)
}

func (r *CatalogGormRepository) RemoveFollower(ctx context.Context, barberID, customerID string) error {
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND customer_id = ?", barberID, customerID).
		Delete(&models.Follower{}).Error
	return classify("remove_follower", err, nil, nil)
}

func (r *CatalogGormRepository) IsFollowing(ctx context.Context, barberID, customerID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follower{}).
		Where("barber_id = ? AND customer_id = ?", barberID, customerID).
		Count(&n).Error; err != nil {
		return false, httperr.Storage("is_following", err)
	}
	return n > 0, nil
}

func (r *CatalogGormRepository) ListFollowers(ctx context.Context, barberID string) ([]models.Follower, error) {
	var out []models.Follower
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("customer_id ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list_followers", err)
	}
	return out, nil
}

func (r *CatalogGormRepository) ListFollowing(ctx context.Context, customerID string) ([]models.Follower, error) {
	var out []models.Follower
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("barber_id ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list_following", err)
	}
	return out, nil
}

// --------------------------------------------------
// Rating
// --------------------------------------------------

func (r *CatalogGormRepository) ListRatings(ctx context.Context, barberID string) ([]models.Rating, error) {
	var out []models.Rating
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("updated_at DESC").
		Find(&out).Error; err != nil {
		return nil, httperr.Storage("list_ratings", err)
	}
	return out, nil
}
