package booking

import (
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/httperr"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// ===============================
// Booking Status
// ===============================

// Status is the closed set of states a reservation can be in. It is
// persisted as two flags (completed, no_show) but never handled as such.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var (
	ErrInvalidState = httperr.Conflict("invalid_state")
	ErrNotStarted   = httperr.Validation("appointment_not_started")
	ErrUnknown      = httperr.Validation("invalid_status")
)

// Derive reads the status back from persisted flags. A record carrying
// both flags is reported as completed; Flags never produces one.
func Derive(completed, noShow bool, start, now time.Time) Status {
	switch {
	case completed:
		return StatusCompleted
	case noShow:
		return StatusNoShow
	case start.After(now):
		return StatusUpcoming
	default:
		return StatusPending
	}
}

func Of(b *models.BookedSlot, now time.Time) Status {
	return Derive(b.Completed, b.NoShow, b.StartTime, now)
}

// Flags is the persisted encoding of a status.
func Flags(s Status) (completed, noShow bool) {
	switch s {
	case StatusCompleted:
		return true, false
	case StatusNoShow:
		return false, true
	default:
		return false, false
	}
}

func Parse(s string) (Status, error) {
	switch Status(s) {
	case StatusCompleted, StatusNoShow:
		return Status(s), nil
	case "noshow", "no-show":
		return StatusNoShow, nil
	}
	return "", ErrUnknown
}

// ===============================
// Validations
// ===============================

// CanTransition decides whether a booking in current may be marked as
// target. Completed and no-show are terminal and mutually exclusive;
// reaching the same terminal state again is a no-op handled by callers.
func CanTransition(current, target Status) error {
	if target != StatusCompleted && target != StatusNoShow {
		return ErrUnknown
	}
	switch current {
	case StatusPending:
		return nil
	case StatusUpcoming:
		return ErrNotStarted
	default:
		return ErrInvalidState
	}
}

// CanCancel only lets future reservations go back to open inventory.
func CanCancel(current Status) error {
	if current != StatusUpcoming {
		return ErrInvalidState
	}
	return nil
}

func CanReceiveFeedback(current Status) error {
	if current != StatusCompleted {
		return httperr.Conflict("booking_not_completed")
	}
	return nil
}
