package slot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/domain/booking"
	"github.com/BruksfildServices01/barber-slots/internal/models"
)

// State is one cell of a day view.
type State struct {
	Key       string    `json:"key"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    Status    `json:"status"`
	OpenID    string    `json:"open_id,omitempty"`
	BookingID string    `json:"booking_id,omitempty"`
}

// DayStatus is the merged view of one barber's day.
type DayStatus struct {
	Date  string  `json:"date"`
	Slots []State `json:"slots"`

	// Start times holding both an open and a booked record.
	Inconsistent []string `json:"inconsistent,omitempty"`
}

func (d DayStatus) Get(key string) (State, bool) {
	for _, s := range d.Slots {
		if s.Key == key {
			return s, true
		}
	}
	return State{}, false
}

// Statuses is the key -> status mapping for the whole grid.
func (d DayStatus) Statuses() map[string]Status {
	out := make(map[string]Status, len(d.Slots))
	for _, s := range d.Slots {
		out[s.Key] = s.Status
	}
	return out
}

// Visible drops slots hidden from interactive rendering.
func (d DayStatus) Visible() []State {
	out := make([]State, 0, len(d.Slots))
	for _, s := range d.Slots {
		if s.Status.Visible() {
			out = append(out, s)
		}
	}
	return out
}

// ComputeDayStatus merges the generated grid with the stored records.
// Any booking at a start time wins over an open record there. An open
// record only counts while its start is not in the past.
func ComputeDayStatus(
	windows []Window,
	open []models.OpenSlot,
	booked []models.BookedSlot,
	now time.Time,
) DayStatus {

	openAt := make(map[int64]models.OpenSlot, len(open))
	for _, o := range open {
		openAt[o.StartTime.Unix()] = o
	}

	bookedAt := make(map[int64]models.BookedSlot, len(booked))
	for _, b := range booked {
		bookedAt[b.StartTime.Unix()] = b
	}

	var day DayStatus
	if len(windows) > 0 {
		day.Date = windows[0].Start.Format("2006-01-02")
	}

	for _, w := range windows {
		at := w.Start.Unix()
		st := State{Key: w.Key(), Start: w.Start, End: w.End}

		o, hasOpen := openAt[at]
		b, hasBooked := bookedAt[at]

		switch {
		case hasBooked:
			st.BookingID = b.ID
			st.Status = fromBooking(booking.Of(&b, now))
			if hasOpen {
				day.Inconsistent = append(day.Inconsistent, st.Key)
			}
		case hasOpen && !w.Start.Before(now):
			st.OpenID = o.ID
			st.Status = StatusOpen
		case w.Start.Before(now):
			st.Status = StatusPast
		default:
			st.Status = StatusClosed
		}

		day.Slots = append(day.Slots, st)
	}

	sort.Strings(day.Inconsistent)
	return day
}

func fromBooking(s booking.Status) Status {
	switch s {
	case booking.StatusCompleted:
		return StatusCompleted
	case booking.StatusNoShow:
		return StatusNoShow
	case booking.StatusPending:
		return StatusPending
	default:
		return StatusBooked
	}
}
