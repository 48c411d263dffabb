package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

var _ slot.Store = (*SlotGormRepository)(nil)

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

// --------------------------------------------------
// Open slots
// --------------------------------------------------

func (r *SlotGormRepository) InsertOpen(ctx context.Context, slots ...models.OpenSlot) error {
	if len(slots) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range slots {
			var n int64
			if err := tx.Model(&models.BookedSlot{}).
				Where("barber_id = ? AND start_time = ?", o.BarberID, o.StartTime).
				Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return slot.ErrSlotOccupied
			}
		}
		return tx.Create(&slots).Error
	})
	return classify("insert_open", err, nil, slot.ErrSlotOccupied)
}

func (r *SlotGormRepository) DeleteOpen(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OpenSlot{})
	if res.Error != nil {
		return false, httperr.Storage("delete_open", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *SlotGormRepository) DeleteOpenAt(ctx context.Context, barberID string, start time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_time = ?", barberID, start).
		Delete(&models.OpenSlot{})
	if res.Error != nil {
		return false, httperr.Storage("delete_open_at", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *SlotGormRepository) GetOpen(ctx context.Context, id string) (*models.OpenSlot, error) {
	var o models.OpenSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, classify("get_open", err, slot.ErrSlotNotFound, nil)
	}
	return &o, nil
}

func (r *SlotGormRepository) QueryOpen(ctx context.Context, q slot.OpenQuery) ([]models.OpenSlot, error) {
	tx := r.db.WithContext(ctx).Where("barber_id = ?", q.BarberID)
	tx = timeRange(tx, q.From, q.To)

	var out []models.OpenSlot
	if err := tx.Order("start_time ASC").Find(&out).Error; err != nil {
		return nil, httperr.Storage("query_open", err)
	}
	return out, nil
}

// --------------------------------------------------
// Booked slots
// --------------------------------------------------

func (r *SlotGormRepository) GetBooked(ctx context.Context, id string) (*models.BookedSlot, error) {
	var b models.BookedSlot
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, classify("get_booked", err, booking.ErrBookingNotFound, nil)
	}
	return &b, nil
}

func (r *SlotGormRepository) QueryBooked(ctx context.Context, q slot.BookedQuery) ([]models.BookedSlot, error) {
	if q.BarberID == "" && q.CustomerID == "" {
		return nil, httperr.Validation("unscoped_query")
	}

	tx := r.db.WithContext(ctx).Model(&models.BookedSlot{})
	if q.BarberID != "" {
		tx = tx.Where("barber_id = ?", q.BarberID)
	}
	if q.CustomerID != "" {
		tx = tx.Where("customer_id = ?", q.CustomerID)
	}
	tx = timeRange(tx, q.From, q.To)
	if q.Completed != nil {
		tx = tx.Where("completed = ?", *q.Completed)
	}
	if q.NoShow != nil {
		tx = tx.Where("no_show = ?", *q.NoShow)
	}

	order := "start_time ASC"
	if q.Desc {
		order = "start_time DESC"
	}

	var out []models.BookedSlot
	if err := tx.Order(order).Find(&out).Error; err != nil {
		return nil, httperr.Storage("query_booked", err)
	}
	return out, nil
}

func (r *SlotGormRepository) SetOutcome(ctx context.Context, id string, completed, noShow bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BookedSlot{}).
		Where("id = ? AND completed = ? AND no_show = ?", id, false, false).
		Updates(map[string]any{
			"completed":  completed,
			"no_show":    noShow,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, httperr.Storage("set_outcome", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *SlotGormRepository) SaveFeedback(ctx context.Context, id string, fb slot.Feedback) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.BookedSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&b).Error; err != nil {
			return err
		}

		fields := map[string]any{"updated_at": time.Now().UTC()}
		if fb.Rating != nil {
			b.Rating = fb.Rating
			fields["rating"] = *fb.Rating
		}
		if fb.Review != nil {
			b.Review = fb.Review
			fields["review"] = *fb.Review
		}
		if err := tx.Model(&models.BookedSlot{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}

		mirror := models.Rating{
			BookingID:    id,
			BarberID:     b.BarberID,
			Rating:       b.Rating,
			Review:       b.Review,
			ReviewerName: fb.ReviewerName,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "reviewer_name", "updated_at"}),
		}).Create(&mirror).Error
	})
	return classify("save_feedback", err, booking.ErrBookingNotFound, nil)
}

// --------------------------------------------------
// Transitions
// --------------------------------------------------

func (r *SlotGormRepository) ConvertOpenToBooked(ctx context.Context, openID string, b *models.BookedSlot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.OpenSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", openID).
			First(&o).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", openID).Delete(&models.OpenSlot{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return slot.ErrSlotTaken
		}

		return tx.Create(b).Error
	})
	return classify("convert_open_to_booked", err, slot.ErrSlotTaken, slot.ErrSlotTaken)
}

func (r *SlotGormRepository) ConvertBookedToOpen(ctx context.Context, bookingID, customerID string, o *models.OpenSlot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.BookedSlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bookingID).
			First(&b).Error; err != nil {
			return err
		}
		if b.Customer.ID != customerID {
			return booking.ErrNotOwner
		}

		res := tx.Where(
			"id = ? AND customer_id = ? AND completed = ? AND no_show = ?",
			bookingID, customerID, false, false,
		).Delete(&models.BookedSlot{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return booking.ErrInvalidState
		}

		return tx.Create(o).Error
	})
	return classify("convert_booked_to_open", err, booking.ErrBookingNotFound, slot.ErrSlotOccupied)
}

func timeRange(tx *gorm.DB, from, to time.Time) *gorm.DB {
	if !from.IsZero() {
		tx = tx.Where("start_time >= ?", from)
	}
	if !to.IsZero() {
		tx = tx.Where("start_time < ?", to)
	}
	return tx
}
