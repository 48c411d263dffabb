package booking

import "github.com/BruksfildServices01/barber-slots/internal/httperr"

var (
	ErrBookingNotFound = httperr.NotFoundErr("booking_not_found", "")
	ErrNotOwner        = httperr.Permission("not_booking_owner")
	ErrNotBarber       = httperr.Permission("not_booking_barber")
	ErrNoServices      = httperr.Validation("no_services_selected")
	ErrForeignService  = httperr.Validation("service_not_offered")
	ErrInvalidRating   = httperr.Validation("invalid_rating")
	ErrEmptyReview     = httperr.Validation("empty_review")
	ErrInvalidPhone    = httperr.Validation("invalid_phone")
)

// ServiceGone names the service that disappeared before booking.
func ServiceGone(serviceID string) error {
	return httperr.NotFoundErr("service_not_found", serviceID)
}
