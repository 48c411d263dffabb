package catalog

import "github.com/BruksfildServices01/barber-slots/internal/httperr"

var (
	ErrBarberNotFound      = httperr.NotFoundErr("barber_not_found", "")
	ErrServiceNotFound     = httperr.NotFoundErr("service_not_found", "")
	ErrDescriptionNotFound = httperr.NotFoundErr("description_not_found", "")
	ErrInvalidName         = httperr.Validation("invalid_name")
	ErrInvalidEmail        = httperr.Validation("invalid_email")
	ErrEmptyDescription    = httperr.Validation("empty_description")
	ErrSelfFollow          = httperr.Validation("cannot_follow_self")
	ErrInvalidPhone        = httperr.Validation("invalid_phone")
)
