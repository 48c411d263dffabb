package booking

import (
	"context"
	"strings"
	"unicode/utf8"

	domain "github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/domain/slot"
	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// maxReviewLen counts characters, not bytes.
const maxReviewLen = 1000

// Feedback attaches a rating or review to a completed booking of the
// calling customer.
type Feedback struct {
	store slot.Store
	clock *timezone.Clock
}

func NewFeedback(store slot.Store, clock *timezone.Clock) *Feedback {
	return &Feedback{store: store, clock: clock}
}

func (uc *Feedback) Rate(ctx context.Context, customerID, bookingID string, value int) error {
	if value < 1 || value > 5 {
		return domain.ErrInvalidRating
	}
	return uc.save(ctx, customerID, bookingID, slot.Feedback{Rating: &value})
}

func (uc *Feedback) Review(ctx context.Context, customerID, bookingID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrEmptyReview
	}
	if utf8.RuneCountInString(text) > maxReviewLen {
		text = string([]rune(text)[:maxReviewLen])
	}
	return uc.save(ctx, customerID, bookingID, slot.Feedback{Review: &text})
}

func (uc *Feedback) save(ctx context.Context, customerID, bookingID string, fb slot.Feedback) error {
	b, err := uc.store.GetBooked(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Customer.ID != customerID {
		return domain.ErrNotOwner
	}
	if err := domain.CanReceiveFeedback(domain.Of(b, uc.clock.Now())); err != nil {
		return err
	}

	fb.ReviewerName = b.Customer.DisplayName
	return uc.store.SaveFeedback(ctx, bookingID, fb)
}
