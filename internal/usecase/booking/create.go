package booking

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-slots/internal/audit"
	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/dto"
	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/models"
	"github.com/BruksfildServices01/barber-slots/internal/observability"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
	"github.com/BruksfildServices01/barber-slots/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	OpenSlotID string
	ServiceIDs []string
	Customer   models.Customer
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	store       slot.Store
	catalog     catalog.Repository
	clock       *timezone.Clock
	phoneRegion string
	audit       *audit.Dispatcher
	log         *slog.Logger
}

func NewCreateBooking(
	store slot.Store,
	catalog catalog.Repository,
	clock *timezone.Clock,
	phoneRegion string,
	audit *audit.Dispatcher,
	log *slog.Logger,
) *CreateBooking {
	return &CreateBooking{
		store:       store,
		catalog:     catalog,
		clock:       clock,
		phoneRegion: phoneRegion,
		audit:       audit,
		log:         log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*dto.BookingSummary, error) {

	ctx, span := observability.Tracer().Start(ctx, "booking.create")
	defer span.End()
	span.SetAttributes(attribute.String("open_slot.id", in.OpenSlotID))

	// --------------------------------------------------
	// 1. Customer
	// --------------------------------------------------
	customer := in.Customer
	customer.DisplayName = strings.TrimSpace(customer.DisplayName)
	if customer.ID == "" {
		return nil, httperr.Validation("missing_customer")
	}
	if customer.Phone != "" {
		phone, ok := validators.NormalizePhone(customer.Phone, uc.phoneRegion)
		if !ok {
			return nil, domain.ErrInvalidPhone
		}
		customer.Phone = phone
	}

	if len(in.ServiceIDs) == 0 {
		return nil, domain.ErrNoServices
	}

	// --------------------------------------------------
	// 2. Services, priced as of now
	// --------------------------------------------------
	services := make([]*models.Service, 0, len(in.ServiceIDs))
	for _, id := range in.ServiceIDs {
		svc, err := uc.catalog.GetService(ctx, id)
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, domain.ServiceGone(id)
		}
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	// --------------------------------------------------
	// 3. Open slot
	// --------------------------------------------------
	open, err := uc.store.GetOpen(ctx, in.OpenSlotID)
	if httperr.KindOf(err) == httperr.KindNotFound {
		return nil, slot.ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	if open.StartTime.Before(uc.clock.Now()) {
		return nil, slot.ErrSlotExpired
	}

	var total int64
	names := make([]string, 0, len(services))
	for _, svc := range services {
		if svc.BarberID != open.BarberID {
			return nil, domain.ErrForeignService
		}
		total += svc.PriceCents
		names = append(names, svc.Name)
	}

	// --------------------------------------------------
	// 4. Barber snapshot
	// --------------------------------------------------
	barber, err := uc.catalog.GetBarber(ctx, open.BarberID)
	if err != nil {
		return nil, err
	}
	email := open.BarberEmail
	if email == "" {
		email = barber.Email
	}

	// --------------------------------------------------
	// 5. Open slot -> booking, atomically
	// --------------------------------------------------
	b := &models.BookedSlot{
		ID:           open.ID,
		BarberID:     open.BarberID,
		BarberEmail:  email,
		BarberName:   barber.Name,
		StartTime:    open.StartTime,
		EndTime:      open.EndTime,
		ServiceIDs:   append([]string(nil), in.ServiceIDs...),
		ServiceNames: names,
		TotalCents:   total,
		Customer:     customer,
	}

	if err := uc.store.ConvertOpenToBooked(ctx, open.ID, b); err != nil {
		span.RecordError(err)
		if httperr.IsBusiness(err, "slot_taken") {
			uc.audit.Dispatch(audit.Event{
				BarberID: open.BarberID,
				ActorID:  customer.ID,
				Action:   audit.ActionBookingConflict,
				Entity:   "open_slot",
				EntityID: open.ID,
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarberID: b.BarberID,
		ActorID:  customer.ID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{"total_cents": total, "services": in.ServiceIDs},
	})

	summary := dto.NewBookingSummary(b, uc.clock.Location())
	return &summary, nil
}
