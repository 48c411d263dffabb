package slot

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// OpenQuery selects one barber's open slots. Zero times are unbounded;
// From is inclusive and To exclusive.
type OpenQuery struct {
	BarberID string
	From     time.Time
	To       time.Time
}

// BookedQuery selects bookings by barber or by customer; one of the two
// is required.
type BookedQuery struct {
	BarberID   string
	CustomerID string

	From time.Time
	To   time.Time

	Completed *bool
	NoShow    *bool

	Desc bool
}

// Feedback is a rating and/or review left on a completed booking.
type Feedback struct {
	Rating       *int
	Review       *string
	ReviewerName string
}

type Store interface {
	// -------- Open slots --------

	// InsertOpen writes all slots or none. It fails with ErrSlotOccupied
	// when a barber already holds an open or booked record at one of the
	// start times.
	InsertOpen(ctx context.Context, slots ...models.OpenSlot) error

	// DeleteOpen reports whether a record was removed. Deleting a missing
	// record is not an error.
	DeleteOpen(ctx context.Context, id string) (bool, error)

	DeleteOpenAt(ctx context.Context, barberID string, start time.Time) (bool, error)

	GetOpen(ctx context.Context, id string) (*models.OpenSlot, error)

	QueryOpen(ctx context.Context, q OpenQuery) ([]models.OpenSlot, error)

	// -------- Booked slots --------

	GetBooked(ctx context.Context, id string) (*models.BookedSlot, error)

	QueryBooked(ctx context.Context, q BookedQuery) ([]models.BookedSlot, error)

	// SetOutcome writes the terminal flags of a booking that has neither
	// flag set. It reports false when the booking was already terminal.
	SetOutcome(ctx context.Context, id string, completed, noShow bool) (bool, error)

	// SaveFeedback stores the feedback on the booking and mirrors it into
	// the barber's ratings.
	SaveFeedback(ctx context.Context, id string, fb Feedback) error

	// -------- Transitions --------

	// ConvertOpenToBooked removes the open slot and inserts the booking
	// atomically. Exactly one caller can win a given open slot; the
	// others get ErrSlotTaken.
	ConvertOpenToBooked(ctx context.Context, openID string, b *models.BookedSlot) error

	// ConvertBookedToOpen removes a customer's untouched booking and
	// republishes its time as an open slot atomically.
	ConvertBookedToOpen(ctx context.Context, bookingID, customerID string, o *models.OpenSlot) error
}
