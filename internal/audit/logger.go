package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// Logger persists audit events. Without a database it only writes them
// to the process log.
type Logger struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Logger {
	return &Logger{db: db, log: log}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	l.log.Info("audit",
		slog.String("action", ev.Action),
		slog.String("barber_id", ev.BarberID),
		slog.String("actor_id", ev.ActorID),
		slog.String("entity", ev.Entity),
		slog.String("entity_id", ev.EntityID),
	)

	if l.db == nil {
		return nil
	}

	row := models.AuditLog{
		BarberID: ev.BarberID,
		ActorID:  ev.ActorID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&row).Error
}

// Filter narrows a barber's trail. Zero values match everything.
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Page   int
	Limit  int
}

// List returns a page of the barber's trail, newest first, and the total
// number of matching entries.
func (l *Logger) List(ctx context.Context, barberID string, f Filter) ([]models.AuditLog, int64, error) {
	if l.db == nil {
		return []models.AuditLog{}, 0, nil
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("barber_id = ?", barberID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditLog
	err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error
	return rows, total, err
}
