package slot

// Status is what a generated slot currently is for its barber.
type Status string

const (
	StatusOpen      Status = "open"
	StatusBooked    Status = "booked"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "noshow"
	StatusClosed    Status = "closed"
	StatusPast      Status = "past"
)

// Visible reports whether the slot is shown in a day view. Past slots
// that nobody booked are hidden.
func (s Status) Visible() bool {
	return s != StatusPast
}
