package slot

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-slots/internal/timezone"
)

// Policy is the daily slot grid. Every barber shares it.
type Policy struct {
	Anchor   time.Duration // offset of the first slot from civil midnight
	Count    int
	Duration time.Duration
	Gap      time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		Anchor:   9 * time.Hour,
		Count:    14,
		Duration: 50 * time.Minute,
		Gap:      10 * time.Minute,
	}
}

// ParseAnchor reads an "HH:MM" daily start.
func ParseAnchor(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("slot anchor %q: %w", hm, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (p Policy) Validate() error {
	if p.Count <= 0 || p.Duration <= 0 || p.Gap < 0 || p.Anchor < 0 {
		return ErrInvalidPolicy
	}
	last := p.Anchor + time.Duration(p.Count-1)*(p.Duration+p.Gap)
	if last >= 24*time.Hour {
		return ErrInvalidPolicy
	}
	return nil
}

// Window is one generated slot.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Key() string {
	return Key(w.Start)
}

// Key is the canonical identity of a start time inside a day view.
// It is formatted in the location the time carries.
func Key(t time.Time) string {
	return t.Format(timezone.DateTimeLayout)
}

// Generate returns the ordered slot grid for the civil day of date, in
// date's location. It never consults storage.
func (p Policy) Generate(date time.Time, barberID string) []Window {
	_ = barberID // the grid is the same for every barber

	loc := date.Location()
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	out := make([]Window, 0, p.Count)
	step := p.Duration + p.Gap
	for i := 0; i < p.Count; i++ {
		start := wallClock(midnight, p.Anchor+time.Duration(i)*step)
		out = append(out, Window{Start: start, End: start.Add(p.Duration)})
	}
	return out
}

// EndFor derives an open slot's end from its start.
func (p Policy) EndFor(start time.Time) time.Time {
	return start.Add(p.Duration)
}

// wallClock adds an offset as civil hours and minutes so a DST shift
// inside the day does not move the grid.
func wallClock(midnight time.Time, off time.Duration) time.Time {
	h := int(off / time.Hour)
	m := int((off % time.Hour) / time.Minute)
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), h, m, 0, 0, midnight.Location())
}
